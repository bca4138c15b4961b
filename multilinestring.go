package geobin

import geom "github.com/twpayne/go-geom"

// MultiLineString is a view over a bounding box, an offset table and the
// payloads of its lines.
type MultiLineString struct {
	data []byte
	members
}

// MultiLineStringFromBytes wraps a multilinestring payload.
func MultiLineStringFromBytes(data []byte) MultiLineString {
	return MultiLineString{data: data, members: membersFromBytes(data)}
}

// BoundingBox returns the box covering every line.
func (ml MultiLineString) BoundingBox() BoundingBox { return ml.bbox }

// Len returns the number of lines, read from the offset table.
func (ml MultiLineString) Len() int { return ml.len() }

// IsEmpty returns true when there are no lines.
func (ml MultiLineString) IsEmpty() bool { return ml.len() == 0 }

// At returns line i.
func (ml MultiLineString) At(i int) LineString {
	return LineStringFromBytes(ml.at(i))
}

// ForEach iterates over every line. Return false from iter to stop.
func (ml MultiLineString) ForEach(iter func(i int, l LineString) bool) {
	for i, n := 0, ml.Len(); i < n; i++ {
		if !iter(i, ml.At(i)) {
			return
		}
	}
}

// Geometry lifts the lines into a Geometry.
func (ml MultiLineString) Geometry() Geometry {
	return Geometry{typ: TypeMultiLineString, data: ml.data}
}

// Relation relates the lines to other.
func (ml MultiLineString) Relation(other Geometry, req RelationRequest) RelationResult {
	switch other.typ {
	case TypeLineString:
		l := other.lineString()
		return relateParts(ml.bbox.Disjoint(l.bbox), ml.Len(), l.parts(), req,
			func(i, _ int, req RelationRequest) RelationResult {
				return ml.At(i).relateLine(l, req)
			})
	case TypeMultiLineString:
		o := other.multiLineString()
		return relateParts(ml.bbox.Disjoint(o.bbox), ml.Len(), o.Len(), req,
			func(i, j int, req RelationRequest) RelationResult {
				return ml.At(i).relateLine(o.At(j), req)
			})
	case TypePolygon:
		p := other.polygon()
		return relateParts(ml.bbox.Disjoint(p.bbox), ml.Len(), p.parts(), req,
			func(i, _ int, req RelationRequest) RelationResult {
				return ml.At(i).relatePolygon(p, req)
			})
	case TypeMultiPolygon:
		mp := other.multiPolygon()
		return relateParts(ml.bbox.Disjoint(mp.bbox), ml.Len(), mp.Len(), req,
			func(i, j int, req RelationRequest) RelationResult {
				return ml.At(i).relatePolygon(mp.At(j), req)
			})
	case TypeGeometryCollection:
		return other.Relation(ml.Geometry(), req.Swap()).Swap()
	default:
		return req.AllFalse().markDisjoint()
	}
}

// ToGeom exports the lines.
func (ml MultiLineString) ToGeom() *geom.MultiLineString {
	var flat []float64
	ends := make([]int, 0, ml.Len())
	ml.ForEach(func(_ int, l LineString) bool {
		flat = append(flat, l.coords.flat()...)
		ends = append(ends, len(flat))
		return true
	})
	return geom.NewMultiLineStringFlat(geom.XY, flat, ends)
}
