package geobin

import "github.com/pkg/errors"

// validate checks the layout of a payload of type typ, recursing into
// members, so that the views built over it never read out of bounds.
func validate(typ GeometryType, data []byte) error {
	switch typ {
	case TypePoint:
		if len(data) != coordSize {
			return errors.Wrapf(ErrInvalidEncoding, "point is %d bytes, expected %d", len(data), coordSize)
		}
		return nil
	case TypeMultiPoint, TypeLineString:
		return validateCoordsShape(typ, data)
	case TypePolygon:
		return validatePolygon(data)
	case TypeMultiLineString:
		return validateMembers(typ, data, func(member []byte) error {
			return validateCoordsShape(TypeLineString, member)
		})
	case TypeMultiPolygon:
		return validateMembers(typ, data, validatePolygon)
	case TypeGeometryCollection:
		return validateCollection(data)
	default:
		return errors.Wrapf(ErrInvalidEncoding, "unknown tag %d", uint64(typ))
	}
}

func validateBoundingBox(typ GeometryType, data []byte) error {
	if len(data) < bboxSize {
		return errors.Wrapf(ErrInvalidEncoding, "%s is %d bytes, too short for a bounding box", typ, len(data))
	}
	b := BoundingBox{data[:bboxSize]}
	min, max := b.Min().Point(), b.Max().Point()
	// Written negated so NaN corners are rejected too.
	if !(min.X <= max.X) || !(min.Y <= max.Y) {
		return errors.Wrapf(ErrInvalidEncoding, "%s bounding box min %v is above max %v", typ, min, max)
	}
	return nil
}

func validateCoordsShape(typ GeometryType, data []byte) error {
	if err := validateBoundingBox(typ, data); err != nil {
		return err
	}
	if n := len(data) - bboxSize; n%coordSize != 0 {
		return errors.Wrapf(ErrInvalidEncoding, "%s holds %d coordinate bytes, not a multiple of %d", typ, n, coordSize)
	}
	return nil
}

func validatePolygon(data []byte) error {
	if err := validateCoordsShape(TypePolygon, data); err != nil {
		return err
	}
	ring := Coords{data[bboxSize:]}
	if !ring.IsEmpty() && !ring.First().Equal(ring.Last()) {
		return errors.Wrap(ErrInvalidEncoding, "polygon ring is not closed")
	}
	return nil
}

func validateMembers(typ GeometryType, data []byte, member func([]byte) error) error {
	if err := validateBoundingBox(typ, data); err != nil {
		return err
	}
	if len(data) < bboxSize+uint32Size {
		return errors.Wrapf(ErrInvalidEncoding, "%s is %d bytes, too short for a member count", typ, len(data))
	}
	count, _ := readUint32(data[bboxSize:])
	header := membersHeaderSize(count)
	if count > len(data) || header > len(data) {
		return errors.Wrapf(ErrInvalidEncoding, "%s of %d members does not fit in %d bytes", typ, count, len(data))
	}
	if count%2 == 0 {
		if pad, _ := readUint32(data[header-uint32Size:]); pad != 0 {
			return errors.Wrapf(ErrInvalidEncoding, "%s padding is %d, expected 0", typ, pad)
		}
	}
	m := membersFromBytes(data)
	prev := 0
	for i := 0; i < count; i++ {
		off := m.offset(i)
		if off < prev || off > len(m.body) || off%float64Size != 0 {
			return errors.Wrapf(ErrInvalidEncoding, "%s member %d has offset %d", typ, i, off)
		}
		if i == 0 && off != 0 {
			return errors.Wrapf(ErrInvalidEncoding, "%s first member starts at %d", typ, off)
		}
		prev = off
	}
	for i := 0; i < count; i++ {
		if err := member(m.at(i)); err != nil {
			return errors.Wrapf(err, "%s member %d", typ, i)
		}
	}
	return nil
}

func validateCollection(data []byte) error {
	if err := validateBoundingBox(TypeGeometryCollection, data); err != nil {
		return err
	}
	if len(data) < collectionHeaderSize {
		return errors.Wrapf(ErrInvalidEncoding, "collection is %d bytes, too short for its offsets", len(data))
	}
	pointsEnd, rest := readUint32(data[bboxSize:])
	linesEnd, _ := readUint32(rest)
	body := data[collectionHeaderSize:]
	if pointsEnd > linesEnd || linesEnd > len(body) {
		return errors.Wrapf(ErrInvalidEncoding, "collection regions end at %d and %d of %d bytes", pointsEnd, linesEnd, len(body))
	}
	if err := validateCoordsShape(TypeMultiPoint, body[:pointsEnd]); err != nil {
		return errors.WithMessage(err, "collection points")
	}
	if err := validate(TypeMultiLineString, body[pointsEnd:linesEnd]); err != nil {
		return errors.WithMessage(err, "collection lines")
	}
	if err := validate(TypeMultiPolygon, body[linesEnd:]); err != nil {
		return errors.WithMessage(err, "collection polygons")
	}
	return nil
}
