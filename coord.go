package geobin

import (
	"encoding/binary"
	"math"

	"github.com/golang/geo/r2"
)

const (
	float64Size = 8
	uint32Size  = 4
	coordSize   = 2 * float64Size
)

// Coord is a view over an (x, y) pair. X is the longitude and Y the latitude.
type Coord struct {
	data []byte
}

// CoordFromBytes wraps exactly 16 bytes as a coordinate.
func CoordFromBytes(data []byte) Coord {
	if debugAssertions {
		assertf(len(data) == coordSize, "coord is %d bytes, expected %d", len(data), coordSize)
	}
	return Coord{data}
}

// X returns the longitude.
func (c Coord) X() float64 {
	x, _ := readFloat64(c.data)
	return x
}

// Y returns the latitude.
func (c Coord) Y() float64 {
	y, _ := readFloat64(c.data[float64Size:])
	return y
}

// Point returns the coordinate as a planar point.
func (c Coord) Point() r2.Point {
	x, data := readFloat64(c.data)
	y, _ := readFloat64(data)
	return r2.Point{X: x, Y: y}
}

// Equal reports whether both coordinates hold the same values.
func (c Coord) Equal(other Coord) bool {
	return c.X() == other.X() && c.Y() == other.Y()
}

// Coords is a view over a flat run of coordinates.
type Coords struct {
	data []byte
}

// CoordsFromBytes wraps data as a run of coordinates. The length of data
// must be a multiple of 16.
func CoordsFromBytes(data []byte) Coords {
	if debugAssertions {
		assertf(len(data)%coordSize == 0, "coords length %d is not a multiple of %d", len(data), coordSize)
	}
	return Coords{data}
}

// Len returns the number of coordinates.
func (cs Coords) Len() int {
	return len(cs.data) / coordSize
}

// IsEmpty returns true when there are no coordinates.
func (cs Coords) IsEmpty() bool {
	return len(cs.data) == 0
}

// At returns the coordinate at index i.
func (cs Coords) At(i int) Coord {
	return Coord{cs.data[i*coordSize : (i+1)*coordSize]}
}

// First returns the first coordinate. It must not be called on an empty run.
func (cs Coords) First() Coord {
	return cs.At(0)
}

// Last returns the last coordinate. It must not be called on an empty run.
func (cs Coords) Last() Coord {
	return cs.At(cs.Len() - 1)
}

// ForEach iterates over every coordinate. Return false from iter to stop.
func (cs Coords) ForEach(iter func(i int, c Coord) bool) {
	for i, n := 0, cs.Len(); i < n; i++ {
		if !iter(i, cs.At(i)) {
			return
		}
	}
}

// NumSegments returns the number of consecutive pairs, (0,1), (1,2), ...
func (cs Coords) NumSegments() int {
	if n := cs.Len(); n > 1 {
		return n - 1
	}
	return 0
}

// Segment returns the segment between coordinates i and i+1.
func (cs Coords) Segment(i int) Segment {
	return SegmentFromCoords(cs.At(i), cs.At(i+1))
}

// ForEachSegment iterates over every consecutive pair. Return false from
// iter to stop.
func (cs Coords) ForEachSegment(iter func(s Segment) bool) {
	for i, n := 0, cs.NumSegments(); i < n; i++ {
		if !iter(cs.Segment(i)) {
			return
		}
	}
}

// flat copies the coordinates out as x, y pairs.
func (cs Coords) flat() []float64 {
	vals := make([]float64, 0, cs.Len()*2)
	for data := cs.data; len(data) > 0; {
		var v float64
		v, data = readFloat64(data)
		vals = append(vals, v)
	}
	return vals
}

// readFloat64 reads a float64 from data.
func readFloat64(data []byte) (float64, []byte) {
	f := math.Float64frombits(binary.NativeEndian.Uint64(data))
	return f, data[float64Size:]
}

// readUint32 reads a uint32 from data and returns as an int.
func readUint32(data []byte) (int, []byte) {
	return int(binary.NativeEndian.Uint32(data)), data[uint32Size:]
}
