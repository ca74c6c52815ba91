package fragment

import "encoding/binary"

// A neighbor unit is a packed (neighbor vertex, edge id) pair, little endian.
const (
	NbrUnitSize  = 16
	NbrVidOffset = 0
	NbrEidOffset = 8
)

// AdjList is one contiguous segment of neighbor units. It borrows the
// fragment's memory.
type AdjList struct {
	units []byte
	begin int
	end   int
}

func (a AdjList) Size() int {
	return a.end - a.begin
}

func (a AdjList) Empty() bool {
	return a.end == a.begin
}

func (a AdjList) Neighbor(i int) Vertex {
	return Vertex(a.read(i, NbrVidOffset))
}

func (a AdjList) Edge(i int) EdgeID {
	return EdgeID(a.read(i, NbrEidOffset))
}

func (a AdjList) read(i, fieldOffset int) int64 {
	p := (a.begin+i)*NbrUnitSize + fieldOffset
	return int64(binary.LittleEndian.Uint64(a.units[p : p+8]))
}

// Bytes returns the raw units of the segment without copying
func (a AdjList) Bytes() []byte {
	return a.units[a.begin*NbrUnitSize : a.end*NbrUnitSize]
}

// View exposes one sub-field of every unit of the segment, selected by its
// byte offset within the unit (NbrVidOffset or NbrEidOffset).
func (a AdjList) View(fieldOffset int) StridedView {
	return NewStridedView(a.units, a.begin*NbrUnitSize, a.Size(), NbrUnitSize, fieldOffset)
}

func (a AdjList) NeighborView() StridedView {
	return a.View(NbrVidOffset)
}

func (a AdjList) EdgeView() StridedView {
	return a.View(NbrEidOffset)
}
