package geobin

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

const bboxSize = 2 * coordSize

// BoxRelation is the relation between two bounding boxes.
type BoxRelation byte

const (
	BoxDisjoint BoxRelation = iota
	BoxIntersects
	BoxContains
	BoxContained
)

func (r BoxRelation) String() string {
	switch r {
	default:
		return "Disjoint"
	case BoxIntersects:
		return "Intersects"
	case BoxContains:
		return "Contains"
	case BoxContained:
		return "Contained"
	}
}

// BoundingBox is a view over a min and a max coordinate.
type BoundingBox struct {
	data []byte
}

// BoundingBoxFromBytes wraps exactly 32 bytes as a bounding box.
func BoundingBoxFromBytes(data []byte) BoundingBox {
	if debugAssertions {
		assertf(len(data) == bboxSize, "bounding box is %d bytes, expected %d", len(data), bboxSize)
	}
	b := BoundingBox{data}
	if debugAssertions {
		assertf(b.Min().X() <= b.Max().X() && b.Min().Y() <= b.Max().Y(),
			"bounding box min %v is above max %v", b.Min().Point(), b.Max().Point())
	}
	return b
}

// Min returns the bottom left corner.
func (b BoundingBox) Min() Coord {
	return Coord{b.data[:coordSize]}
}

// Max returns the top right corner.
func (b BoundingBox) Max() Coord {
	return Coord{b.data[coordSize:bboxSize]}
}

// Rect returns the box as a closed planar rectangle.
func (b BoundingBox) Rect() r2.Rect {
	min, max := b.Min().Point(), b.Max().Point()
	return r2.Rect{
		X: r1.Interval{Lo: min.X, Hi: max.X},
		Y: r1.Interval{Lo: min.Y, Hi: max.Y},
	}
}

// ContainsPoint returns true when p lies inside the box or on its edge.
func (b BoundingBox) ContainsPoint(p r2.Point) bool {
	return b.Rect().ContainsPoint(p)
}

// ContainsCoord returns true when c lies inside the box or on its edge.
func (b BoundingBox) ContainsCoord(c Coord) bool {
	return b.ContainsPoint(c.Point())
}

// Disjoint returns true when the boxes share no point, edges included.
func (b BoundingBox) Disjoint(other BoundingBox) bool {
	r, o := b.Rect(), other.Rect()
	return !r.X.Intersects(o.X) || !r.Y.Intersects(o.Y)
}

// Classify returns how the box relates to other. Identical boxes are
// reported as Contains.
func (b BoundingBox) Classify(other BoundingBox) BoxRelation {
	r, o := b.Rect(), other.Rect()
	switch {
	case !r.X.Intersects(o.X) || !r.Y.Intersects(o.Y):
		return BoxDisjoint
	case r.X.ContainsInterval(o.X) && r.Y.ContainsInterval(o.Y):
		return BoxContains
	case o.X.ContainsInterval(r.X) && o.Y.ContainsInterval(r.Y):
		return BoxContained
	default:
		return BoxIntersects
	}
}

// Relation answers req for the two boxes.
func (b BoundingBox) Relation(other BoundingBox, req RelationRequest) RelationResult {
	out := req.AllFalse()
	switch b.Classify(other) {
	case BoxContains:
		out = out.markStrictContains()
		if other.Classify(b) == BoxContains {
			out = out.markStrictContained()
		}
	case BoxContained:
		out = out.markStrictContained()
	case BoxIntersects:
		out = out.markIntersect()
	default:
		out = out.markDisjoint()
	}
	return out
}
