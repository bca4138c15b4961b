package geobin

import geom "github.com/twpayne/go-geom"

// MultiPoint is a view over a bounding box followed by its points.
type MultiPoint struct {
	data   []byte
	bbox   BoundingBox
	coords Coords
}

// MultiPointFromBytes wraps a multipoint payload.
func MultiPointFromBytes(data []byte) MultiPoint {
	if debugAssertions {
		assertf(len(data) >= bboxSize, "multipoint is %d bytes", len(data))
	}
	return MultiPoint{
		data:   data,
		bbox:   BoundingBoxFromBytes(data[:bboxSize]),
		coords: CoordsFromBytes(data[bboxSize:]),
	}
}

// BoundingBox returns the box covering every point.
func (mp MultiPoint) BoundingBox() BoundingBox { return mp.bbox }

// Coords returns the points as coordinates.
func (mp MultiPoint) Coords() Coords { return mp.coords }

// Len returns the number of points.
func (mp MultiPoint) Len() int { return mp.coords.Len() }

// IsEmpty returns true when there are no points.
func (mp MultiPoint) IsEmpty() bool { return mp.coords.IsEmpty() }

// At returns point i.
func (mp MultiPoint) At(i int) Point { return Point{mp.coords.At(i)} }

// Geometry lifts the multipoint into a Geometry.
func (mp MultiPoint) Geometry() Geometry {
	return Geometry{typ: TypeMultiPoint, data: mp.data}
}

// Relation relates the points to other. Points are only ever contained by
// areal shapes.
func (mp MultiPoint) Relation(other Geometry, req RelationRequest) RelationResult {
	switch other.typ {
	case TypePolygon, TypeMultiPolygon, TypeGeometryCollection:
		return other.Relation(mp.Geometry(), req.Swap()).Swap()
	default:
		return req.AllFalse().markDisjoint()
	}
}

// ToGeom exports the points.
func (mp MultiPoint) ToGeom() *geom.MultiPoint {
	return geom.NewMultiPointFlat(geom.XY, mp.coords.flat())
}
