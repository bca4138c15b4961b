package geobin

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"
)

func mustGeom(t testing.TB, g geom.T) Geometry {
	t.Helper()
	data, err := Encode(g)
	require.NoError(t, err)
	out, err := Decode(data)
	require.NoError(t, err)
	return out
}

func mustParse(t testing.TB, json string) Geometry {
	t.Helper()
	g, err := ParseJSON(json)
	require.NoError(t, err)
	return g
}

func tPoint(t testing.TB, x, y float64) Geometry {
	return mustParse(t, fmt.Sprintf(`{"type":"Point","coordinates":[%v,%v]}`, x, y))
}

func ring(coords ...float64) []geom.Coord {
	var out []geom.Coord
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, geom.Coord{coords[i], coords[i+1]})
	}
	return out
}

// square returns a closed axis aligned square polygon.
func square(minX, minY, maxX, maxY float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		ring(minX, minY, maxX, minY, maxX, maxY, minX, maxY, minX, minY),
	})
}

func multiPolygon(polys ...*geom.Polygon) *geom.MultiPolygon {
	coords := make([][][]geom.Coord, len(polys))
	for i, p := range polys {
		coords[i] = p.Coords()
	}
	return geom.NewMultiPolygon(geom.XY).MustSetCoords(coords)
}

func lineString(coords ...float64) *geom.LineString {
	return geom.NewLineString(geom.XY).MustSetCoords(ring(coords...))
}

func collection(t testing.TB, gs ...geom.T) *geom.GeometryCollection {
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(gs...))
	return gc
}

// flat returns the coordinates of g, never nil.
func flat(g geom.T) []float64 {
	return append([]float64{}, g.FlatCoords()...)
}

// numParts returns the number of rings, lines or polygons of g.
func numParts(g geom.T) int {
	switch g := g.(type) {
	case *geom.Polygon:
		return g.NumLinearRings()
	case *geom.MultiLineString:
		return g.NumLineStrings()
	case *geom.MultiPolygon:
		return g.NumPolygons()
	default:
		return -1
	}
}

func TestGeometryTypeTags(t *testing.T) {
	for typ, want := range map[GeometryType]uint64{
		TypePoint:              0,
		TypeMultiPoint:         1,
		TypePolygon:            2,
		TypeMultiPolygon:       3,
		TypeLineString:         4,
		TypeMultiLineString:    5,
		TypeGeometryCollection: 6,
	} {
		if uint64(typ) != want {
			t.Fatalf("%s has tag %d, expect %d", typ, uint64(typ), want)
		}
	}
	require.Equal(t, "Unknown", GeometryType(7).String())
}

func TestEncodePointLayout(t *testing.T) {
	data, err := Encode(geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{1.5, -2}))
	require.NoError(t, err)
	require.Len(t, data, tagSize+coordSize)
	require.Equal(t, uint64(TypePoint), binary.NativeEndian.Uint64(data))
	require.Equal(t, 1.5, math.Float64frombits(binary.NativeEndian.Uint64(data[8:])))
	require.Equal(t, -2.0, math.Float64frombits(binary.NativeEndian.Uint64(data[16:])))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   geom.T
	}{
		{"point", geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{3, 4})},
		{"multipoint", geom.NewMultiPoint(geom.XY).MustSetCoords(ring(1, 2, 3, 4, -5, 6))},
		{"empty multipoint", geom.NewMultiPoint(geom.XY)},
		{"linestring", lineString(0, 0, 1, 1, 2, 0)},
		{"empty linestring", geom.NewLineString(geom.XY)},
		{"polygon", square(0, 0, 10, 10)},
		{"empty polygon", geom.NewPolygon(geom.XY)},
		{"multilinestring", geom.NewMultiLineString(geom.XY).MustSetCoords([][]geom.Coord{
			ring(0, 0, 1, 1, 2, 2),
			ring(5, 5, 6, 7),
			ring(-1, -1, -2, -3, -4, -5),
		})},
		{"empty multilinestring", geom.NewMultiLineString(geom.XY)},
		{"multipolygon", multiPolygon(square(0, 0, 1, 1), square(5, 5, 8, 8))},
		{"empty multipolygon", geom.NewMultiPolygon(geom.XY)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGeom(t, tt.in)
			out := g.ToGeom()
			require.IsType(t, tt.in, out)
			require.Equal(t, flat(tt.in), flat(out))
			require.Equal(t, numParts(tt.in), numParts(out))
		})
	}
}

func TestRoundTripCollection(t *testing.T) {
	in := collection(t,
		geom.NewMultiPoint(geom.XY).MustSetCoords(ring(1, 1, 2, 2)),
		geom.NewMultiLineString(geom.XY).MustSetCoords([][]geom.Coord{ring(0, 0, 3, 3)}),
		multiPolygon(square(0, 0, 4, 4)),
	)
	out, ok := mustGeom(t, in).ToGeom().(*geom.GeometryCollection)
	require.True(t, ok)
	require.Equal(t, 3, out.NumGeoms())
	for i := 0; i < 3; i++ {
		require.IsType(t, in.Geom(i), out.Geom(i))
		require.Equal(t, flat(in.Geom(i)), flat(out.Geom(i)))
	}
}

func TestEmptyGeometries(t *testing.T) {
	sq := mustGeom(t, square(-10, -10, 10, 10))
	for _, in := range []geom.T{
		geom.NewLineString(geom.XY),
		geom.NewPolygon(geom.XY),
		geom.NewMultiPoint(geom.XY),
	} {
		g := mustGeom(t, in)
		require.True(t, g.IsEmpty())
		require.Equal(t, 0, g.Len())
		b, ok := g.BoundingBox()
		require.True(t, ok)
		require.Equal(t, 0.0, b.Min().X())
		require.Equal(t, 0.0, b.Min().Y())
		require.Equal(t, 0.0, b.Max().X())
		require.Equal(t, 0.0, b.Max().Y())

		// the origin lies in sq, emptiness must still win
		require.True(t, g.Disjoint(sq))
		require.True(t, sq.Disjoint(g))
		rel := g.AllRelation(sq)
		require.Equal(t, True, rel.Disjoint)
		require.False(t, rel.AnyRelation())
	}
}

func TestBoundingBoxCoversEveryVertex(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randCoords := func(n int) []geom.Coord {
		cs := make([]geom.Coord, n)
		for i := range cs {
			cs[i] = geom.Coord{rng.Float64()*360 - 180, rng.Float64()*180 - 90}
		}
		return cs
	}
	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(20)
		for _, in := range []geom.T{
			geom.NewMultiPoint(geom.XY).MustSetCoords(randCoords(n)),
			geom.NewLineString(geom.XY).MustSetCoords(randCoords(n)),
			geom.NewMultiLineString(geom.XY).MustSetCoords([][]geom.Coord{randCoords(n), randCoords(n + 1)}),
		} {
			g := mustGeom(t, in)
			b, ok := g.BoundingBox()
			require.True(t, ok)
			cs := in.FlatCoords()
			for j := 0; j < len(cs); j += 2 {
				if !b.ContainsCoord(testCoord(cs[j], cs[j+1])) {
					t.Fatalf("%v outside of %v", cs[j:j+2], b.Rect())
				}
			}
		}
	}
}

func TestDecodeRejectsMalformedBuffers(t *testing.T) {
	line, err := Encode(lineString(0, 0, 1, 0, 1, 1))
	require.NoError(t, err)
	lines, err := Encode(geom.NewMultiLineString(geom.XY).MustSetCoords([][]geom.Coord{
		ring(0, 0, 1, 1), ring(2, 2, 3, 3),
	}))
	require.NoError(t, err)

	patch := func(data []byte, at int, v uint64) []byte {
		out := append([]byte{}, data...)
		binary.NativeEndian.PutUint64(out[at:], v)
		return out
	}
	patch32 := func(data []byte, at int, v uint32) []byte {
		out := append([]byte{}, data...)
		binary.NativeEndian.PutUint32(out[at:], v)
		return out
	}
	// payload starts after the tag, offsets after bbox and count
	offsets := tagSize + bboxSize + uint32Size

	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"short", []byte{0, 0, 0, 0}},
		{"unknown tag", patch(line, 0, 7)},
		{"odd length", append(append([]byte{}, line...), 0)},
		{"point too long", patch(line[:32], 0, uint64(TypePoint))},
		{"linestring without bbox", line[:tagSize+16]},
		{"partial coordinate", line[:len(line)-8]},
		{"open ring", patch(line, 0, uint64(TypePolygon))},
		{"inverted bbox", patch(line, tagSize, math.Float64bits(100))},
		{"nan bbox", patch(line, tagSize, math.Float64bits(math.NaN()))},
		{"offset past the end", patch32(lines, offsets+uint32Size, 1<<20)},
		{"offsets out of order", patch32(lines, offsets, 16)},
		{"unaligned offset", patch32(lines, offsets+uint32Size, 4)},
		{"dirty padding", patch32(lines, offsets+2*uint32Size, 1)},
		{"member count too large", patch32(lines, tagSize+bboxSize, 1<<30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}

	_, err = Decode(line)
	require.NoError(t, err)
	_, err = Decode(lines)
	require.NoError(t, err)
}

func TestDecodeTrusted(t *testing.T) {
	data, err := Encode(square(0, 0, 1, 1))
	require.NoError(t, err)
	g, err := DecodeTrusted(data)
	require.NoError(t, err)
	require.Equal(t, TypePolygon, g.Type())
	require.Equal(t, 5, g.Len())
	require.Len(t, g.Payload(), len(data)-tagSize)

	_, err = DecodeTrusted(data[:4])
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestAccessors(t *testing.T) {
	g := mustGeom(t, square(0, 0, 1, 1))
	_, ok := g.AsPoint()
	require.False(t, ok)
	p, ok := g.AsPolygon()
	require.True(t, ok)
	require.Equal(t, g, p.Geometry())

	var zero Geometry
	require.True(t, zero.IsEmpty())
	require.Nil(t, zero.ToGeom())
	require.Equal(t, "null", zero.JSON())
	require.True(t, zero.Disjoint(g))
	_, ok = zero.AsPoint()
	require.False(t, ok)
}

func relationFixtures(t testing.TB) map[string]Geometry {
	return map[string]Geometry{
		"point":      tPoint(t, 5, 5),
		"far point":  tPoint(t, 50, 50),
		"multipoint": mustGeom(t, geom.NewMultiPoint(geom.XY).MustSetCoords(ring(2, 2, 8, 8, 15, 15))),
		"line":       mustGeom(t, lineString(2, 2, 5, 5, 8, 3)),
		"long line":  mustGeom(t, lineString(-5, 5, 15, 5)),
		"multiline":  mustGeom(t, geom.NewMultiLineString(geom.XY).MustSetCoords([][]geom.Coord{ring(1, 1, 2, 2), ring(20, 20, 21, 21)})),
		"square":     mustGeom(t, square(0, 0, 10, 10)),
		"inner":      mustGeom(t, square(1, 1, 9, 9)),
		"shifted":    mustGeom(t, square(5, 5, 15, 15)),
		"polygons":   mustGeom(t, multiPolygon(square(1, 1, 3, 3), square(20, 20, 30, 30))),
		"collection": mustGeom(t, collection(t,
			geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{4, 4}),
			lineString(3, 3, 4, 6),
			square(2, 2, 6, 6),
		)),
	}
}

func TestRelationIsSymmetric(t *testing.T) {
	fixtures := relationFixtures(t)
	for an, a := range fixtures {
		for bn, b := range fixtures {
			if a.Type() == TypeGeometryCollection && b.Type() == TypeGeometryCollection {
				continue
			}
			ab := a.AllRelation(b)
			ba := b.AllRelation(a)
			if ab != ba.Swap() {
				t.Fatalf("%s vs %s = %v, reversed %v", an, bn, ab, ba)
			}
		}
	}
}

func TestStrictImpliesNonStrict(t *testing.T) {
	fixtures := relationFixtures(t)
	for an, a := range fixtures {
		for bn, b := range fixtures {
			r := a.AllRelation(b)
			if r.StrictContains.IsTrue() && !r.Contains.IsTrue() {
				t.Fatalf("%s vs %s: %v", an, bn, r)
			}
			if r.StrictContained.IsTrue() && !r.Contained.IsTrue() {
				t.Fatalf("%s vs %s: %v", an, bn, r)
			}
			if r.Disjoint.IsTrue() == r.AnyRelation() {
				t.Fatalf("%s vs %s: %v", an, bn, r)
			}
		}
	}
}

func TestConvenienceQueries(t *testing.T) {
	f := relationFixtures(t)
	sq, inner, shifted := f["square"], f["inner"], f["shifted"]

	require.True(t, sq.Contains(inner))
	require.True(t, sq.StrictContains(inner))
	require.False(t, sq.Contained(inner))
	require.True(t, inner.Contained(sq))
	require.True(t, inner.StrictContained(sq))
	require.False(t, sq.Intersects(inner))
	require.True(t, sq.Intersects(shifted))
	require.False(t, sq.Disjoint(shifted))
	require.True(t, sq.Disjoint(f["far point"]))
	require.True(t, sq.Contains(f["point"]))
	require.True(t, f["point"].Contained(sq))
	require.False(t, f["point"].Contains(sq))

	// one of the three points lies outside
	require.True(t, sq.Contains(f["multipoint"]))
	require.False(t, sq.StrictContains(f["multipoint"]))

	rel := sq.AnyRelation(inner)
	require.True(t, rel.AnyRelation())
}
