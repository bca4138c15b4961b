package geobin

import geom "github.com/twpayne/go-geom"

// MultiPolygon is a view over a bounding box, an offset table and the
// payloads of its polygons.
type MultiPolygon struct {
	data []byte
	members
}

// MultiPolygonFromBytes wraps a multipolygon payload.
func MultiPolygonFromBytes(data []byte) MultiPolygon {
	return MultiPolygon{data: data, members: membersFromBytes(data)}
}

// BoundingBox returns the box covering every polygon.
func (mp MultiPolygon) BoundingBox() BoundingBox { return mp.bbox }

// Len returns the number of polygons, read from the offset table.
func (mp MultiPolygon) Len() int { return mp.len() }

// IsEmpty returns true when there are no polygons.
func (mp MultiPolygon) IsEmpty() bool { return mp.len() == 0 }

// At returns polygon i.
func (mp MultiPolygon) At(i int) Polygon {
	return PolygonFromBytes(mp.at(i))
}

// ForEach iterates over every polygon. Return false from iter to stop.
func (mp MultiPolygon) ForEach(iter func(i int, p Polygon) bool) {
	for i, n := 0, mp.Len(); i < n; i++ {
		if !iter(i, mp.At(i)) {
			return
		}
	}
}

// ContainsCoord returns true when any polygon contains c.
func (mp MultiPolygon) ContainsCoord(c Coord) bool {
	if !mp.bbox.ContainsCoord(c) {
		return false
	}
	for i, n := 0, mp.Len(); i < n; i++ {
		if mp.At(i).ContainsCoord(c) {
			return true
		}
	}
	return false
}

// Geometry lifts the polygons into a Geometry.
func (mp MultiPolygon) Geometry() Geometry {
	return Geometry{typ: TypeMultiPolygon, data: mp.data}
}

// Relation relates the polygons to other.
func (mp MultiPolygon) Relation(other Geometry, req RelationRequest) RelationResult {
	switch other.typ {
	case TypePoint:
		c := other.point().Coord()
		return relateParts(!mp.bbox.ContainsCoord(c), mp.Len(), 1, req,
			func(i, _ int, req RelationRequest) RelationResult {
				return mp.At(i).relateCoord(c, req)
			})
	case TypeMultiPoint:
		pts := other.multiPoint()
		return relateParts(mp.bbox.Disjoint(pts.bbox), mp.Len(), pts.Len(), req,
			func(i, j int, req RelationRequest) RelationResult {
				return mp.At(i).relateCoord(pts.coords.At(j), req)
			})
	case TypePolygon:
		p := other.polygon()
		return relateParts(mp.bbox.Disjoint(p.bbox), mp.Len(), p.parts(), req,
			func(i, _ int, req RelationRequest) RelationResult {
				return mp.At(i).relatePolygon(p, req)
			})
	case TypeMultiPolygon:
		o := other.multiPolygon()
		return relateParts(mp.bbox.Disjoint(o.bbox), mp.Len(), o.Len(), req,
			func(i, j int, req RelationRequest) RelationResult {
				return mp.At(i).relatePolygon(o.At(j), req)
			})
	default:
		return other.Relation(mp.Geometry(), req.Swap()).Swap()
	}
}

// ToGeom exports the polygons. Empty members stay as polygons without
// rings.
func (mp MultiPolygon) ToGeom() *geom.MultiPolygon {
	var flat []float64
	endss := make([][]int, 0, mp.Len())
	mp.ForEach(func(_ int, p Polygon) bool {
		if p.IsEmpty() {
			endss = append(endss, []int{})
			return true
		}
		flat = append(flat, p.ring.flat()...)
		endss = append(endss, []int{len(flat)})
		return true
	})
	return geom.NewMultiPolygonFlat(geom.XY, flat, endss)
}
