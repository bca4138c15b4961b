package geobin

import (
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
)

// ErrUnsupportedGeometry is returned when a go-geom value has no encoding.
var ErrUnsupportedGeometry = errors.New("geobin: unsupported geometry")

type flatGeom interface {
	FlatCoords() []float64
	Stride() int
}

func runOf(g flatGeom) coordRun {
	return coordRun{flat: g.FlatCoords(), stride: g.Stride()}
}

// exterior returns the first ring of p. Holes are dropped.
func exterior(p *geom.Polygon) coordRun {
	if p.NumLinearRings() == 0 {
		return coordRun{}
	}
	return runOf(p.LinearRing(0))
}

// Encode encodes g. Only the x and y of each coordinate are kept, polygons
// lose their holes and collections are flattened.
func Encode(g geom.T) ([]byte, error) {
	return AppendEncode(nil, g)
}

// AppendEncode appends the encoding of g to dst.
func AppendEncode(dst []byte, g geom.T) ([]byte, error) {
	w := writer{buf: dst}
	switch g := g.(type) {
	case *geom.Point:
		if g.Empty() {
			return dst, errors.Wrap(ErrUnsupportedGeometry, "empty point")
		}
		w.tag(TypePoint)
		w.point(g.X(), g.Y())
	case *geom.MultiPoint:
		w.tag(TypeMultiPoint)
		w.coordsShape(runOf(g))
	case *geom.LineString:
		w.tag(TypeLineString)
		w.coordsShape(runOf(g))
	case *geom.LinearRing:
		w.tag(TypePolygon)
		w.polygon(runOf(g))
	case *geom.Polygon:
		w.tag(TypePolygon)
		w.polygon(exterior(g))
	case *geom.MultiLineString:
		lines := make([]coordRun, g.NumLineStrings())
		for i := range lines {
			lines[i] = runOf(g.LineString(i))
		}
		w.tag(TypeMultiLineString)
		w.multiLineString(lines)
	case *geom.MultiPolygon:
		rings := make([]coordRun, g.NumPolygons())
		for i := range rings {
			rings[i] = exterior(g.Polygon(i))
		}
		w.tag(TypeMultiPolygon)
		w.multiPolygon(rings)
	case *geom.GeometryCollection:
		var f flattener
		if err := f.add(g); err != nil {
			return dst, err
		}
		w.tag(TypeGeometryCollection)
		w.collection(f.points, f.lines, f.rings)
	default:
		return dst, errors.Wrapf(ErrUnsupportedGeometry, "%T", g)
	}
	if w.err != nil {
		return dst, w.err
	}
	return w.buf, nil
}

// FromGeom encodes g into a new buffer and returns it as a Geometry.
func FromGeom(g geom.T) (Geometry, error) {
	data, err := Encode(g)
	if err != nil {
		return Geometry{}, err
	}
	return DecodeTrusted(data)
}

// flattener sorts the members of nested collections into points, lines
// and polygon rings.
type flattener struct {
	points []coordRun
	lines  []coordRun
	rings  []coordRun
}

func (f *flattener) add(g geom.T) error {
	switch g := g.(type) {
	case *geom.Point:
		if !g.Empty() {
			f.points = append(f.points, runOf(g))
		}
	case *geom.MultiPoint:
		f.points = append(f.points, runOf(g))
	case *geom.LineString:
		f.lines = append(f.lines, runOf(g))
	case *geom.MultiLineString:
		for i := 0; i < g.NumLineStrings(); i++ {
			f.lines = append(f.lines, runOf(g.LineString(i)))
		}
	case *geom.LinearRing:
		f.rings = append(f.rings, runOf(g))
	case *geom.Polygon:
		f.rings = append(f.rings, exterior(g))
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			f.rings = append(f.rings, exterior(g.Polygon(i)))
		}
	case *geom.GeometryCollection:
		for _, m := range g.Geoms() {
			if err := f.add(m); err != nil {
				return err
			}
		}
	default:
		return errors.Wrapf(ErrUnsupportedGeometry, "%T in collection", g)
	}
	return nil
}

// ToGeom exports the geometry. A collection comes back as a collection of
// one MultiPoint, one MultiLineString and one MultiPolygon.
func (g Geometry) ToGeom() geom.T {
	if len(g.data) == 0 {
		return nil
	}
	switch g.typ {
	case TypePoint:
		return g.point().ToGeom()
	case TypeMultiPoint:
		return g.multiPoint().ToGeom()
	case TypeLineString:
		return g.lineString().ToGeom()
	case TypeMultiLineString:
		return g.multiLineString().ToGeom()
	case TypePolygon:
		return g.polygon().ToGeom()
	case TypeMultiPolygon:
		return g.multiPolygon().ToGeom()
	default:
		return g.collection().ToGeom()
	}
}
