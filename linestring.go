package geobin

import geom "github.com/twpayne/go-geom"

// LineString is a view over a bounding box followed by the ordered
// vertices of the line.
type LineString struct {
	data   []byte
	bbox   BoundingBox
	coords Coords
}

// LineStringFromBytes wraps a linestring payload.
func LineStringFromBytes(data []byte) LineString {
	if debugAssertions {
		assertf(len(data) >= bboxSize, "linestring is %d bytes", len(data))
	}
	return LineString{
		data:   data,
		bbox:   BoundingBoxFromBytes(data[:bboxSize]),
		coords: CoordsFromBytes(data[bboxSize:]),
	}
}

// BoundingBox returns the box covering every vertex.
func (l LineString) BoundingBox() BoundingBox { return l.bbox }

// Coords returns the vertices.
func (l LineString) Coords() Coords { return l.coords }

// Len returns the number of vertices.
func (l LineString) Len() int { return l.coords.Len() }

// IsEmpty returns true when the line has no vertices.
func (l LineString) IsEmpty() bool { return l.coords.IsEmpty() }

// Geometry lifts the line into a Geometry.
func (l LineString) Geometry() Geometry {
	return Geometry{typ: TypeLineString, data: l.data}
}

func (l LineString) parts() int {
	if l.IsEmpty() {
		return 0
	}
	return 1
}

// Relation relates the line to other.
func (l LineString) Relation(other Geometry, req RelationRequest) RelationResult {
	switch other.typ {
	case TypeLineString:
		return l.relateLine(other.lineString(), req)
	case TypeMultiLineString:
		ml := other.multiLineString()
		return relateParts(l.bbox.Disjoint(ml.bbox), l.parts(), ml.Len(), req,
			func(_, j int, req RelationRequest) RelationResult {
				return l.relateLine(ml.At(j), req)
			})
	case TypePolygon:
		return l.relatePolygon(other.polygon(), req)
	case TypeMultiPolygon:
		mp := other.multiPolygon()
		return relateParts(l.bbox.Disjoint(mp.bbox), l.parts(), mp.Len(), req,
			func(_, j int, req RelationRequest) RelationResult {
				return l.relatePolygon(mp.At(j), req)
			})
	case TypeGeometryCollection:
		return other.Relation(l.Geometry(), req.Swap()).Swap()
	default:
		return req.AllFalse().markDisjoint()
	}
}

// relateLine reports whether any two segments of the lines cross.
func (l LineString) relateLine(other LineString, req RelationRequest) RelationResult {
	out := req.AllFalse()
	if l.IsEmpty() || other.IsEmpty() || l.bbox.Disjoint(other.bbox) {
		return out.markDisjoint()
	}
	for i, n := 0, l.coords.NumSegments(); i < n; i++ {
		s := l.coords.Segment(i)
		for j, m := 0, other.coords.NumSegments(); j < m; j++ {
			if s.Intersects(other.coords.Segment(j)) {
				return out.markIntersect()
			}
		}
	}
	return out.markDisjoint()
}

// relatePolygon reports an intersection when the line crosses the ring,
// and containment of the line when it does not cross and its first vertex
// lies inside the polygon.
func (l LineString) relatePolygon(p Polygon, req RelationRequest) RelationResult {
	out := req.AllFalse()
	if l.IsEmpty() || p.IsEmpty() || l.bbox.Disjoint(p.bbox) {
		return out.markDisjoint()
	}
	for i, n := 0, l.coords.NumSegments(); i < n; i++ {
		s := l.coords.Segment(i)
		for j, m := 0, p.ring.NumSegments(); j < m; j++ {
			if s.Intersects(p.ring.Segment(j)) {
				return out.markIntersect()
			}
		}
	}
	if p.ContainsCoord(l.coords.First()) {
		return out.markStrictContained()
	}
	return out.markDisjoint()
}

// ToGeom exports the line.
func (l LineString) ToGeom() *geom.LineString {
	return geom.NewLineStringFlat(geom.XY, l.coords.flat())
}
