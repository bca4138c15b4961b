package geobin

import (
	"encoding/binary"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrTooLarge is returned when a payload outgrows the 32-bit offsets of
// the multi-shape and collection layouts.
var ErrTooLarge = errors.New("geobin: geometry too large to encode")

// coordRun is a flat run of coordinates with a stride of at least two.
// Only the first two values of each coordinate are encoded.
type coordRun struct {
	flat   []float64
	stride int
}

func (r coordRun) len() int {
	if r.stride == 0 {
		return 0
	}
	return len(r.flat) / r.stride
}

func (r coordRun) xy(i int) (x, y float64) {
	return r.flat[i*r.stride], r.flat[i*r.stride+1]
}

// closed returns true when the run is empty or ends where it starts.
func (r coordRun) closed() bool {
	n := r.len()
	if n == 0 {
		return true
	}
	x0, y0 := r.xy(0)
	x1, y1 := r.xy(n - 1)
	return x0 == x1 && y0 == y1
}

// bounds grows from the first point it sees and stays at the origin when
// it sees none.
type bounds struct {
	min, max r2.Point
	seen     bool
}

func (b *bounds) add(x, y float64) {
	if !b.seen {
		b.min = r2.Point{X: x, Y: y}
		b.max = b.min
		b.seen = true
		return
	}
	b.min.X = math.Min(b.min.X, x)
	b.min.Y = math.Min(b.min.Y, y)
	b.max.X = math.Max(b.max.X, x)
	b.max.Y = math.Max(b.max.Y, y)
}

func (b *bounds) addRun(r coordRun) {
	for i, n := 0, r.len(); i < n; i++ {
		b.add(r.xy(i))
	}
}

func (b *bounds) addRuns(runs []coordRun) {
	for _, r := range runs {
		b.addRun(r)
	}
}

// writer is a growable encode buffer. Offset slots are reserved up front
// and patched once the members they point at are written.
type writer struct {
	buf []byte
	err error
}

func (w *writer) uint64(v uint64) {
	w.buf = binary.NativeEndian.AppendUint64(w.buf, v)
}

func (w *writer) uint32(v uint32) {
	w.buf = binary.NativeEndian.AppendUint32(w.buf, v)
}

func (w *writer) float64(f float64) {
	w.uint64(math.Float64bits(f))
}

func (w *writer) coord(x, y float64) {
	w.float64(x)
	w.float64(y)
}

func (w *writer) bounds(b bounds) {
	w.coord(b.min.X, b.min.Y)
	w.coord(b.max.X, b.max.Y)
}

func (w *writer) run(r coordRun) {
	for i, n := 0, r.len(); i < n; i++ {
		w.coord(r.xy(i))
	}
}

// reserve appends a zeroed uint32 slot and returns its position.
func (w *writer) reserve() int {
	at := len(w.buf)
	w.uint32(0)
	return at
}

// patch writes the distance between base and the end of the buffer into
// the slot at position at.
func (w *writer) patch(at, base int) {
	off := len(w.buf) - base
	if uint64(off) > math.MaxUint32 {
		if w.err == nil {
			w.err = errors.Wrapf(ErrTooLarge, "offset %d", off)
		}
		return
	}
	binary.NativeEndian.PutUint32(w.buf[at:], uint32(off))
}

func (w *writer) tag(t GeometryType) {
	w.uint64(uint64(t))
}

func (w *writer) point(x, y float64) {
	w.coord(x, y)
}

// coordsShape writes the bounding box and coordinates shared by the
// MultiPoint and LineString layouts. Every run is concatenated.
func (w *writer) coordsShape(runs ...coordRun) {
	var b bounds
	b.addRuns(runs)
	w.bounds(b)
	for _, r := range runs {
		w.run(r)
	}
}

// polygon writes an exterior ring, closing it when needed.
func (w *writer) polygon(ring coordRun) {
	w.coordsShape(ring)
	if !ring.closed() {
		w.coord(ring.xy(0))
	}
}

// members writes the offset table layout shared by MultiLineString and
// MultiPolygon.
func (w *writer) members(runs []coordRun, member func(w *writer, r coordRun)) {
	var b bounds
	b.addRuns(runs)
	w.bounds(b)
	w.uint32(uint32(len(runs)))
	slots := len(w.buf)
	for range runs {
		w.uint32(0)
	}
	if len(runs)%2 == 0 {
		w.uint32(0)
	}
	base := len(w.buf)
	for i, r := range runs {
		w.patch(slots+i*uint32Size, base)
		member(w, r)
	}
}

func (w *writer) multiLineString(lines []coordRun) {
	w.members(lines, func(w *writer, r coordRun) { w.coordsShape(r) })
}

func (w *writer) multiPolygon(rings []coordRun) {
	w.members(rings, func(w *writer, r coordRun) { w.polygon(r) })
}

// collection writes the three flattened buckets behind a shared bounding
// box and the two region offsets.
func (w *writer) collection(points, lines, rings []coordRun) {
	var b bounds
	b.addRuns(points)
	b.addRuns(lines)
	b.addRuns(rings)
	w.bounds(b)
	pointsEnd := w.reserve()
	linesEnd := w.reserve()
	base := len(w.buf)
	w.coordsShape(points...)
	w.patch(pointsEnd, base)
	w.multiLineString(lines)
	w.patch(linesEnd, base)
	w.multiPolygon(rings)
}
