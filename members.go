package geobin

// members is the offset table layout of MultiLineString and MultiPolygon:
// a bounding box, a uint32 count, count uint32 offsets, a zeroed uint32
// when count is even, and then the concatenated member payloads. Offsets
// are relative to the first member payload.
type members struct {
	bbox    BoundingBox
	offsets []byte
	body    []byte
}

// membersHeaderSize returns the number of bytes before the first member.
func membersHeaderSize(count int) int {
	n := bboxSize + uint32Size + count*uint32Size
	if count%2 == 0 {
		n += uint32Size
	}
	return n
}

func membersFromBytes(data []byte) members {
	if debugAssertions {
		assertf(len(data) >= bboxSize+uint32Size, "offset table is %d bytes", len(data))
	}
	count, _ := readUint32(data[bboxSize:])
	header := membersHeaderSize(count)
	if debugAssertions {
		assertf(len(data) >= header, "offset table of %d members does not fit in %d bytes", count, len(data))
	}
	start := bboxSize + uint32Size
	return members{
		bbox:    BoundingBoxFromBytes(data[:bboxSize]),
		offsets: data[start : start+count*uint32Size],
		body:    data[header:],
	}
}

func (m members) len() int {
	return len(m.offsets) / uint32Size
}

func (m members) offset(i int) int {
	off, _ := readUint32(m.offsets[i*uint32Size:])
	return off
}

// at returns the payload of member i, which runs up to the next offset or
// to the end of the body for the last member.
func (m members) at(i int) []byte {
	start, end := m.offset(i), len(m.body)
	if i+1 < m.len() {
		end = m.offset(i + 1)
	}
	if debugAssertions {
		assertf(start <= end && end <= len(m.body), "member %d spans [%d, %d) of %d bytes", i, start, end, len(m.body))
	}
	return m.body[start:end]
}
