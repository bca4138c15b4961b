// Package geobin encodes 2D geometries into a flat binary layout that is
// queried in place. Coordinates, bounding boxes and spatial relations are
// all read straight from the encoded bytes.
package geobin

import (
	"encoding/binary"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ErrInvalidEncoding is returned when a buffer is not a valid encoded
// geometry. The buffer must be discarded.
var ErrInvalidEncoding = errors.New("geobin: invalid encoding")

const tagSize = 8

// GeometryType is the tag written in front of every encoded geometry.
// The values are part of the binary format and must never change.
type GeometryType uint64

const (
	TypePoint              GeometryType = 0
	TypeMultiPoint         GeometryType = 1
	TypePolygon            GeometryType = 2
	TypeMultiPolygon       GeometryType = 3
	TypeLineString         GeometryType = 4
	TypeMultiLineString    GeometryType = 5
	TypeGeometryCollection GeometryType = 6
)

func (t GeometryType) String() string {
	switch t {
	default:
		return "Unknown"
	case TypePoint:
		return "Point"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeLineString:
		return "LineString"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	}
}

func (t GeometryType) valid() bool {
	return t <= TypeGeometryCollection
}

// Geometry is any encoded geometry. It holds the payload that follows the
// tag and borrows it from the decoded buffer, which must not be modified
// while the geometry is in use.
type Geometry struct {
	typ  GeometryType
	data []byte
}

// Decode validates data and returns the geometry it holds. The whole
// layout is checked once here so every later access can trust it.
func Decode(data []byte) (Geometry, error) {
	g, err := decodeTag(data)
	if err == nil {
		err = validate(g.typ, g.data)
	}
	if err != nil {
		glog.V(2).Infof("geobin: rejecting %d byte buffer: %v", len(data), err)
		return Geometry{}, err
	}
	return g, nil
}

// DecodeTrusted returns the geometry held in data checking only the tag
// and the overall length. Use it for buffers produced by Encode.
func DecodeTrusted(data []byte) (Geometry, error) {
	g, err := decodeTag(data)
	if err != nil {
		return Geometry{}, err
	}
	return g, nil
}

func decodeTag(data []byte) (Geometry, error) {
	if len(data) < tagSize {
		return Geometry{}, errors.Wrapf(ErrInvalidEncoding, "buffer of %d bytes has no tag", len(data))
	}
	if len(data)%float64Size != 0 {
		return Geometry{}, errors.Wrapf(ErrInvalidEncoding, "buffer of %d bytes is not a multiple of %d", len(data), float64Size)
	}
	typ := GeometryType(binary.NativeEndian.Uint64(data))
	if !typ.valid() {
		return Geometry{}, errors.Wrapf(ErrInvalidEncoding, "unknown tag %d", uint64(typ))
	}
	return Geometry{typ: typ, data: data[tagSize:]}, nil
}

// Type returns the geometry type.
func (g Geometry) Type() GeometryType { return g.typ }

// Payload returns the encoded geometry without its tag.
func (g Geometry) Payload() []byte { return g.data }

// IsEmpty returns true when the geometry has no coordinates. A point is
// never empty.
func (g Geometry) IsEmpty() bool {
	if len(g.data) == 0 {
		return true
	}
	switch g.typ {
	case TypePoint:
		return false
	case TypeMultiPoint:
		return g.multiPoint().IsEmpty()
	case TypeLineString:
		return g.lineString().IsEmpty()
	case TypeMultiLineString:
		return g.multiLineString().IsEmpty()
	case TypePolygon:
		return g.polygon().IsEmpty()
	case TypeMultiPolygon:
		return g.multiPolygon().IsEmpty()
	default:
		return g.collection().IsEmpty()
	}
}

// Len returns the number of members of a multi geometry or collection,
// the number of coordinates of a line or polygon, and 1 for a point.
func (g Geometry) Len() int {
	if len(g.data) == 0 {
		return 0
	}
	switch g.typ {
	case TypePoint:
		return 1
	case TypeMultiPoint:
		return g.multiPoint().Len()
	case TypeLineString:
		return g.lineString().Len()
	case TypeMultiLineString:
		return g.multiLineString().Len()
	case TypePolygon:
		return g.polygon().Len()
	case TypeMultiPolygon:
		return g.multiPolygon().Len()
	default:
		return g.collection().Len()
	}
}

// BoundingBox returns the stored bounding box. Points have none.
func (g Geometry) BoundingBox() (BoundingBox, bool) {
	if len(g.data) == 0 || g.typ == TypePoint {
		return BoundingBox{}, false
	}
	return BoundingBoxFromBytes(g.data[:bboxSize]), true
}

// boundsDisjoint returns true when the geometry lies outside b.
func (g Geometry) boundsDisjoint(b BoundingBox) bool {
	if g.typ == TypePoint {
		return !b.ContainsCoord(g.point().Coord())
	}
	gb, _ := g.BoundingBox()
	return b.Disjoint(gb)
}

func (g Geometry) point() Point                     { return PointFromBytes(g.data) }
func (g Geometry) multiPoint() MultiPoint           { return MultiPointFromBytes(g.data) }
func (g Geometry) lineString() LineString           { return LineStringFromBytes(g.data) }
func (g Geometry) multiLineString() MultiLineString { return MultiLineStringFromBytes(g.data) }
func (g Geometry) polygon() Polygon                 { return PolygonFromBytes(g.data) }
func (g Geometry) multiPolygon() MultiPolygon       { return MultiPolygonFromBytes(g.data) }
func (g Geometry) collection() Collection           { return CollectionFromBytes(g.data) }

// AsPoint returns the point view when the geometry is a point.
func (g Geometry) AsPoint() (Point, bool) {
	if g.typ != TypePoint || len(g.data) == 0 {
		return Point{}, false
	}
	return g.point(), true
}

// AsMultiPoint returns the multipoint view when the geometry is a multipoint.
func (g Geometry) AsMultiPoint() (MultiPoint, bool) {
	if g.typ != TypeMultiPoint || len(g.data) == 0 {
		return MultiPoint{}, false
	}
	return g.multiPoint(), true
}

// AsLineString returns the line view when the geometry is a linestring.
func (g Geometry) AsLineString() (LineString, bool) {
	if g.typ != TypeLineString || len(g.data) == 0 {
		return LineString{}, false
	}
	return g.lineString(), true
}

// AsMultiLineString returns the lines view when the geometry is a
// multilinestring.
func (g Geometry) AsMultiLineString() (MultiLineString, bool) {
	if g.typ != TypeMultiLineString || len(g.data) == 0 {
		return MultiLineString{}, false
	}
	return g.multiLineString(), true
}

// AsPolygon returns the polygon view when the geometry is a polygon.
func (g Geometry) AsPolygon() (Polygon, bool) {
	if g.typ != TypePolygon || len(g.data) == 0 {
		return Polygon{}, false
	}
	return g.polygon(), true
}

// AsMultiPolygon returns the polygons view when the geometry is a
// multipolygon.
func (g Geometry) AsMultiPolygon() (MultiPolygon, bool) {
	if g.typ != TypeMultiPolygon || len(g.data) == 0 {
		return MultiPolygon{}, false
	}
	return g.multiPolygon(), true
}

// AsCollection returns the collection view when the geometry is a
// geometry collection.
func (g Geometry) AsCollection() (Collection, bool) {
	if g.typ != TypeGeometryCollection || len(g.data) == 0 {
		return Collection{}, false
	}
	return g.collection(), true
}

// Relation answers req for g against other. See RelationRequest for the
// early exit behavior.
func (g Geometry) Relation(other Geometry, req RelationRequest) RelationResult {
	if len(g.data) == 0 || len(other.data) == 0 {
		return req.AllFalse().markDisjoint()
	}
	switch g.typ {
	case TypePoint:
		return g.point().Relation(other, req)
	case TypeMultiPoint:
		return g.multiPoint().Relation(other, req)
	case TypeLineString:
		return g.lineString().Relation(other, req)
	case TypeMultiLineString:
		return g.multiLineString().Relation(other, req)
	case TypePolygon:
		return g.polygon().Relation(other, req)
	case TypeMultiPolygon:
		return g.multiPolygon().Relation(other, req)
	default:
		return g.collection().Relation(other, req)
	}
}

// AllRelation computes every relation without early exit.
func (g Geometry) AllRelation(other Geometry) RelationResult {
	return g.Relation(other, AllRelations())
}

// AnyRelation computes every relation and stops at the first one found.
func (g Geometry) AnyRelation(other Geometry) RelationResult {
	return g.Relation(other, AnyRelation())
}

// Contains returns true when some part of g covers some part of other.
func (g Geometry) Contains(other Geometry) bool {
	return g.Relation(other, RelationRequest{Contains: true, EarlyExit: true}).Contains.IsTrue()
}

// StrictContains returns true when every part of other is covered by g.
func (g Geometry) StrictContains(other Geometry) bool {
	return g.Relation(other, RelationRequest{StrictContains: true, EarlyExit: true}).StrictContains.IsTrue()
}

// Contained returns true when some part of g lies inside other.
func (g Geometry) Contained(other Geometry) bool {
	return g.Relation(other, RelationRequest{Contained: true, EarlyExit: true}).Contained.IsTrue()
}

// StrictContained returns true when every part of g lies inside other.
func (g Geometry) StrictContained(other Geometry) bool {
	return g.Relation(other, RelationRequest{StrictContained: true, EarlyExit: true}).StrictContained.IsTrue()
}

// Intersects returns true when the boundaries of g and other cross.
func (g Geometry) Intersects(other Geometry) bool {
	return g.Relation(other, RelationRequest{Intersect: true, EarlyExit: true}).Intersect.IsTrue()
}

// Disjoint returns true when g and other share nothing.
func (g Geometry) Disjoint(other Geometry) bool {
	return g.Relation(other, RelationRequest{Disjoint: true, EarlyExit: true}).Disjoint.IsTrue()
}
