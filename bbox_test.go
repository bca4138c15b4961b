package geobin

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func testBBox(minX, minY, maxX, maxY float64) BoundingBox {
	var w writer
	w.coord(minX, minY)
	w.coord(maxX, maxY)
	return BoundingBoxFromBytes(w.buf)
}

func TestBoundingBoxContains(t *testing.T) {
	b := testBBox(0, 0, 10, 10)
	for _, tt := range []struct {
		x, y   float64
		expect bool
	}{
		{5, 5, true},
		{0, 0, true},
		{10, 10, true},
		{10, 5, true},
		{-1, 5, false},
		{5, 10.5, false},
	} {
		if got := b.ContainsCoord(testCoord(tt.x, tt.y)); got != tt.expect {
			t.Fatalf("(%v,%v) contains = %t, expect %t", tt.x, tt.y, got, tt.expect)
		}
	}
	require.Equal(t, r2.Point{X: 10, Y: 10}, b.Max().Point())
}

func TestBoundingBoxClassify(t *testing.T) {
	outer := testBBox(0, 0, 10, 10)
	for _, tt := range []struct {
		name   string
		b      BoundingBox
		expect BoxRelation
	}{
		{"inside", testBBox(2, 2, 4, 4), BoxContains},
		{"touching from inside", testBBox(0, 0, 5, 5), BoxContains},
		{"equal", testBBox(0, 0, 10, 10), BoxContains},
		{"around", testBBox(-1, -1, 11, 11), BoxContained},
		{"overlap", testBBox(5, 5, 15, 15), BoxIntersects},
		{"cross", testBBox(4, -5, 6, 15), BoxIntersects},
		{"touching edge", testBBox(10, 0, 20, 10), BoxIntersects},
		{"touching corner", testBBox(10, 10, 20, 20), BoxIntersects},
		{"beside", testBBox(20, 5, 30, 6), BoxDisjoint},
		{"above", testBBox(2, 11, 4, 12), BoxDisjoint},
	} {
		if got := outer.Classify(tt.b); got != tt.expect {
			t.Fatalf("%s = %s, expect %s", tt.name, got, tt.expect)
		}
	}
}

func TestBoundingBoxClassifyIsAntisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randBox := func() BoundingBox {
		x0, x1 := rng.Float64()*20, rng.Float64()*20
		y0, y1 := rng.Float64()*20, rng.Float64()*20
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		return testBBox(x0, y0, x1, y1)
	}
	for i := 0; i < 1000; i++ {
		a, b := randBox(), randBox()
		ab, ba := a.Classify(b), b.Classify(a)
		switch ab {
		case BoxContains:
			require.Equal(t, BoxContained, ba)
		case BoxContained:
			require.Equal(t, BoxContains, ba)
		default:
			require.Equal(t, ab, ba)
		}
		require.Equal(t, ab == BoxDisjoint, a.Disjoint(b))
	}
}

func TestBoundingBoxRelation(t *testing.T) {
	outer := testBBox(0, 0, 10, 10)

	r := outer.Relation(testBBox(1, 1, 2, 2), AllRelations())
	require.Equal(t, RelationResult{
		Contains: True, StrictContains: True,
		Contained: False, StrictContained: False,
		Intersect: False, Disjoint: False,
	}, r)

	r = outer.Relation(testBBox(5, 5, 15, 15), AllRelations())
	require.Equal(t, True, r.Intersect)
	require.Equal(t, False, r.Contains)
	require.Equal(t, False, r.Disjoint)

	r = outer.Relation(testBBox(20, 20, 30, 30), RelationRequest{Disjoint: true})
	require.Equal(t, RelationResult{Disjoint: True}, r)

	r = outer.Relation(outer, AllRelations())
	require.Equal(t, True, r.Contains)
	require.Equal(t, True, r.Contained)
}
