package geobin

import geom "github.com/twpayne/go-geom"

// Point is a view over a single coordinate.
type Point struct {
	coord Coord
}

// PointFromBytes wraps a 16 byte point payload.
func PointFromBytes(data []byte) Point {
	return Point{CoordFromBytes(data)}
}

// Coord returns the point coordinate.
func (p Point) Coord() Coord { return p.coord }

// X returns the longitude.
func (p Point) X() float64 { return p.coord.X() }

// Y returns the latitude.
func (p Point) Y() float64 { return p.coord.Y() }

// Geometry lifts the point into a Geometry.
func (p Point) Geometry() Geometry {
	return Geometry{typ: TypePoint, data: p.coord.data}
}

// Relation relates the point to other. A point has no interior, so it is
// either contained by an areal shape or disjoint.
func (p Point) Relation(other Geometry, req RelationRequest) RelationResult {
	switch other.typ {
	case TypePolygon, TypeMultiPolygon, TypeGeometryCollection:
		return other.Relation(p.Geometry(), req.Swap()).Swap()
	default:
		return req.AllFalse().markDisjoint()
	}
}

// ToGeom exports the point.
func (p Point) ToGeom() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.X(), p.Y()})
}
