package fragment

const (
	labelShift = 48
	offsetMask = int64(1)<<labelShift - 1

	// MaxLabels keeps encoded vertex ids positive
	MaxLabels = 1 << (63 - labelShift)
)

// Vertex is a fragment-local vertex id. The label is stored in the high bits and
// the row offset in the label's vertex table in the low bits.
type Vertex int64

func EncodeVertex(label LabelID, offset int64) Vertex {
	return Vertex(int64(label)<<labelShift | offset&offsetMask)
}

func (v Vertex) Label() LabelID {
	return LabelID(int64(v) >> labelShift)
}

func (v Vertex) Offset() int64 {
	return int64(v) & offsetMask
}

// VertexRange is the half open range [Begin, End) of the vertices of one label
type VertexRange struct {
	Begin Vertex
	End   Vertex
}

func (r VertexRange) Size() int64 {
	return int64(r.End - r.Begin)
}

func (r VertexRange) Contains(v Vertex) bool {
	return v >= r.Begin && v < r.End
}
