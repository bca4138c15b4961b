package geobin

import geom "github.com/twpayne/go-geom"

// collectionHeaderSize is the bounding box and the two region offsets.
const collectionHeaderSize = bboxSize + 2*uint32Size

// Collection is a view over a flattened geometry collection: a bounding
// box, the offsets where the points and the lines end, and then a
// MultiPoint, a MultiLineString and a MultiPolygon payload. Nested
// collections are merged into these three buckets when encoding.
type Collection struct {
	data     []byte
	bbox     BoundingBox
	points   MultiPoint
	lines    MultiLineString
	polygons MultiPolygon
}

// CollectionFromBytes wraps a collection payload.
func CollectionFromBytes(data []byte) Collection {
	if debugAssertions {
		assertf(len(data) >= collectionHeaderSize, "collection is %d bytes", len(data))
	}
	pointsEnd, rest := readUint32(data[bboxSize:])
	linesEnd, _ := readUint32(rest)
	body := data[collectionHeaderSize:]
	if debugAssertions {
		assertf(pointsEnd <= linesEnd && linesEnd <= len(body),
			"collection regions end at %d and %d of %d bytes", pointsEnd, linesEnd, len(body))
	}
	return Collection{
		data:     data,
		bbox:     BoundingBoxFromBytes(data[:bboxSize]),
		points:   MultiPointFromBytes(body[:pointsEnd]),
		lines:    MultiLineStringFromBytes(body[pointsEnd:linesEnd]),
		polygons: MultiPolygonFromBytes(body[linesEnd:]),
	}
}

// BoundingBox returns the box covering every member.
func (c Collection) BoundingBox() BoundingBox { return c.bbox }

// Points returns every point of the collection.
func (c Collection) Points() MultiPoint { return c.points }

// Lines returns every line of the collection.
func (c Collection) Lines() MultiLineString { return c.lines }

// Polygons returns every polygon of the collection.
func (c Collection) Polygons() MultiPolygon { return c.polygons }

// Len returns the number of points, lines and polygons.
func (c Collection) Len() int {
	return c.points.Len() + c.lines.Len() + c.polygons.Len()
}

// IsEmpty returns true when all three buckets are empty.
func (c Collection) IsEmpty() bool {
	return c.points.IsEmpty() && c.lines.IsEmpty() && c.polygons.IsEmpty()
}

// Geometry lifts the collection into a Geometry.
func (c Collection) Geometry() Geometry {
	return Geometry{typ: TypeGeometryCollection, data: c.data}
}

// Relation combines the relations of the points, the lines and the
// polygons to other. The collection is strictly contained only when every
// non empty bucket is.
func (c Collection) Relation(other Geometry, req RelationRequest) RelationResult {
	out := req.AllFalse()
	if c.IsEmpty() || other.IsEmpty() || other.boundsDisjoint(c.bbox) {
		return out.markDisjoint()
	}
	probe := req.StripDisjoint()
	if req.Disjoint {
		probe.Contains, probe.Contained, probe.Intersect = true, true, true
	}
	related := false
	allContained := true
	for _, g := range [...]Geometry{c.points.Geometry(), c.lines.Geometry(), c.polygons.Geometry()} {
		if g.IsEmpty() {
			continue
		}
		r := g.Relation(other, probe)
		if r.AnyRelation() {
			related = true
		}
		if !r.StrictContained.IsTrue() {
			allContained = false
		}
		r.StrictContained = Unset
		out = out.Or(r)
		if settled(req, out, related) {
			return out
		}
	}
	if allContained {
		out = out.markStrictContained()
	}
	if !related {
		out = out.markDisjoint()
	}
	return out
}

// ToGeom exports the three buckets. The nesting the collection was built
// from is not recoverable.
func (c Collection) ToGeom() *geom.GeometryCollection {
	gc := geom.NewGeometryCollection()
	// Every member has the XY layout.
	_ = gc.Push(c.points.ToGeom(), c.lines.ToGeom(), c.polygons.ToGeom())
	return gc
}
