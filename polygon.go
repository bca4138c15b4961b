package geobin

import (
	"github.com/golang/geo/r2"
	geom "github.com/twpayne/go-geom"
)

// Polygon is a view over a bounding box followed by a closed exterior
// ring. Holes are not supported.
//
// Polygons are expected to be simple. Two polygons whose edges never
// cross are related by testing a single vertex of each against the
// other, which does not hold for self-intersecting rings.
type Polygon struct {
	data []byte
	bbox BoundingBox
	ring Coords
}

// PolygonFromBytes wraps a polygon payload.
func PolygonFromBytes(data []byte) Polygon {
	if debugAssertions {
		assertf(len(data) >= bboxSize, "polygon is %d bytes", len(data))
	}
	p := Polygon{
		data: data,
		bbox: BoundingBoxFromBytes(data[:bboxSize]),
		ring: CoordsFromBytes(data[bboxSize:]),
	}
	if debugAssertions {
		assertf(p.ring.IsEmpty() || p.ring.First().Equal(p.ring.Last()), "polygon ring is not closed")
	}
	return p
}

// BoundingBox returns the box covering the ring.
func (p Polygon) BoundingBox() BoundingBox { return p.bbox }

// Coords returns the exterior ring. The last coordinate repeats the first.
func (p Polygon) Coords() Coords { return p.ring }

// Len returns the number of ring coordinates.
func (p Polygon) Len() int { return p.ring.Len() }

// IsEmpty returns true when the polygon has no ring.
func (p Polygon) IsEmpty() bool { return p.ring.IsEmpty() }

// Geometry lifts the polygon into a Geometry.
func (p Polygon) Geometry() Geometry {
	return Geometry{typ: TypePolygon, data: p.data}
}

func (p Polygon) parts() int {
	if p.IsEmpty() {
		return 0
	}
	return 1
}

// ContainsCoord returns true when c lies inside the ring, using the even
// odd rule on a horizontal ray running left from c. Edges are half open in
// y, so a vertex level with c is counted once.
func (p Polygon) ContainsCoord(c Coord) bool {
	return p.containsPoint(c.Point())
}

func (p Polygon) containsPoint(pt r2.Point) bool {
	if p.IsEmpty() || !p.bbox.ContainsPoint(pt) {
		return false
	}
	inside := false
	p.ring.ForEachSegment(func(s Segment) bool {
		a, b := s.Start, s.End
		if (a.Y > pt.Y) == (b.Y > pt.Y) {
			return true
		}
		if x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y); x <= pt.X {
			inside = !inside
		}
		return true
	})
	return inside
}

// Relation relates the polygon to other.
func (p Polygon) Relation(other Geometry, req RelationRequest) RelationResult {
	switch other.typ {
	case TypePoint:
		return p.relateCoord(other.point().Coord(), req)
	case TypeMultiPoint:
		mp := other.multiPoint()
		return relateParts(p.bbox.Disjoint(mp.bbox), p.parts(), mp.Len(), req,
			func(_, j int, req RelationRequest) RelationResult {
				return p.relateCoord(mp.coords.At(j), req)
			})
	case TypePolygon:
		return p.relatePolygon(other.polygon(), req)
	case TypeMultiPolygon:
		mp := other.multiPolygon()
		return relateParts(p.bbox.Disjoint(mp.bbox), p.parts(), mp.Len(), req,
			func(_, j int, req RelationRequest) RelationResult {
				return p.relatePolygon(mp.At(j), req)
			})
	default:
		return other.Relation(p.Geometry(), req.Swap()).Swap()
	}
}

func (p Polygon) relateCoord(c Coord, req RelationRequest) RelationResult {
	out := req.AllFalse()
	if p.ContainsCoord(c) {
		return out.markStrictContains()
	}
	return out.markDisjoint()
}

func (p Polygon) relatePolygon(other Polygon, req RelationRequest) RelationResult {
	out := req.AllFalse()
	if p.IsEmpty() || other.IsEmpty() || p.bbox.Disjoint(other.bbox) {
		return out.markDisjoint()
	}
	for i, n := 0, p.ring.NumSegments(); i < n; i++ {
		s := p.ring.Segment(i)
		for j, m := 0, other.ring.NumSegments(); j < m; j++ {
			if s.Intersects(other.ring.Segment(j)) {
				return out.markIntersect()
			}
		}
	}
	// No edge crosses, so one vertex decides for the whole ring.
	switch {
	case p.ContainsCoord(other.ring.First()):
		return out.markStrictContains()
	case other.ContainsCoord(p.ring.First()):
		return out.markStrictContained()
	default:
		return out.markDisjoint()
	}
}

// ToGeom exports the polygon. An empty polygon has no rings.
func (p Polygon) ToGeom() *geom.Polygon {
	if p.IsEmpty() {
		return geom.NewPolygon(geom.XY)
	}
	flat := p.ring.flat()
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}
