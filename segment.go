package geobin

import "github.com/golang/geo/r2"

// collinearEpsilon bounds the cross product of three points, relative to
// the lengths of the two vectors it is taken from, under which the points
// are treated as collinear.
const collinearEpsilon = 1e-12

type orientation int8

const (
	collinear orientation = iota
	clockwise
	counterClockwise
)

// Segment is a straight line between two points.
type Segment struct {
	Start, End r2.Point
}

// NewSegment returns the segment from start to end.
func NewSegment(start, end r2.Point) Segment {
	return Segment{Start: start, End: end}
}

// SegmentFromCoords returns the segment between two coordinates.
func SegmentFromCoords(start, end Coord) Segment {
	return Segment{Start: start.Point(), End: end.Point()}
}

// Intersects returns true when the segments share at least one point.
// Touching endpoints and overlapping collinear segments intersect.
func (s Segment) Intersects(other Segment) bool {
	o1 := orient(s.Start, s.End, other.Start)
	o2 := orient(s.Start, s.End, other.End)
	o3 := orient(other.Start, other.End, s.Start)
	o4 := orient(other.Start, other.End, s.End)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == collinear && s.spans(other.Start):
		return true
	case o2 == collinear && s.spans(other.End):
		return true
	case o3 == collinear && other.spans(s.Start):
		return true
	case o4 == collinear && other.spans(s.End):
		return true
	}
	return false
}

// spans returns true when p lies within the coordinate range of s.
func (s Segment) spans(p r2.Point) bool {
	return r2.RectFromPoints(s.Start, s.End).ContainsPoint(p)
}

func orient(p, q, r r2.Point) orientation {
	u, w := q.Sub(p), r.Sub(p)
	v := u.Cross(w)
	tol := collinearEpsilon * u.Norm() * w.Norm()
	switch {
	case v > tol:
		return counterClockwise
	case v < -tol:
		return clockwise
	default:
		return collinear
	}
}
