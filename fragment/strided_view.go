package fragment

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// StridedView reads a logical array of int64 out of interleaved memory: count
// elements, stride bytes apart, each read at offset bytes into its element.
//
// The view never owns or copies buf. It shares the fragment's adjacency memory
// and is only meaningful for as long as the fragment it came from is in use.
type StridedView struct {
	buf    []byte
	start  int
	count  int
	stride int
	offset int
}

func NewStridedView(buf []byte, start, count, stride, offset int) StridedView {
	if count > 0 && start+(count-1)*stride+offset+8 > len(buf) {
		panic(fmt.Sprintf("fragment: strided view of %d elements at %d overruns %d bytes", count, start, len(buf)))
	}
	return StridedView{
		buf:    buf,
		start:  start,
		count:  count,
		stride: stride,
		offset: offset,
	}
}

func (s StridedView) Size() int {
	return s.count
}

func (s StridedView) Stride() int {
	return s.stride
}

func (s StridedView) Offset() int {
	return s.offset
}

func (s StridedView) At(i int) int64 {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("fragment: index %d out of range [0, %d)", i, s.count))
	}
	p := s.start + i*s.stride + s.offset
	return int64(binary.LittleEndian.Uint64(s.buf[p : p+8]))
}

// MultiView concatenates several strided segments into one indexable sequence
// without materializing them.
type MultiView struct {
	segments []StridedView
	// ends[i] is the logical index one past the last element of segments[i]
	ends []int
}

func NewMultiView(segments ...StridedView) MultiView {
	m := MultiView{}
	total := 0
	for _, s := range segments {
		if s.count == 0 {
			continue
		}
		total += s.count
		m.segments = append(m.segments, s)
		m.ends = append(m.ends, total)
	}
	return m
}

func (m MultiView) Size() int {
	if len(m.ends) == 0 {
		return 0
	}
	return m.ends[len(m.ends)-1]
}

func (m MultiView) NumSegments() int {
	return len(m.segments)
}

func (m MultiView) At(i int) int64 {
	if i < 0 || i >= m.Size() {
		panic(fmt.Sprintf("fragment: index %d out of range [0, %d)", i, m.Size()))
	}
	seg := sort.SearchInts(m.ends, i+1)
	begin := 0
	if seg > 0 {
		begin = m.ends[seg-1]
	}
	return m.segments[seg].At(i - begin)
}

// AppendTo copies the view into dst. This is the only path that materializes
// adjacency data.
func (m MultiView) AppendTo(dst []int64) []int64 {
	for _, s := range m.segments {
		for i := 0; i < s.count; i++ {
			dst = append(dst, s.At(i))
		}
	}
	return dst
}
