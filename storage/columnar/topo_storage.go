package columnar

import (
	"fmt"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
)

// TopoStorage answers adjacency queries for one edge label. Neighbor and edge
// id arrays are views over the fragment's packed adjacency and are only valid
// while the fragment is.
type TopoStorage struct {
	frag  fragment.Fragment
	label fragment.LabelID
}

var _ storage.TopoStorage = (*TopoStorage)(nil)

func NewTopoStorage(f fragment.Fragment, edgeType string) (*TopoStorage, error) {
	label, err := resolveEdgeLabel(f, edgeType)
	if err != nil {
		return nil, err
	}
	return &TopoStorage{frag: f, label: label}, nil
}

func (ts *TopoStorage) Add(storage.IdType, *storage.EdgeValue) error {
	return fmt.Errorf("%w: topology insert", storage.ErrNotSupported)
}

func (ts *TopoStorage) out(v storage.IdType) fragment.AdjList {
	return ts.frag.OutgoingAdjList(fragment.Vertex(v), ts.label)
}

func (ts *TopoStorage) in(v storage.IdType) fragment.AdjList {
	return ts.frag.IncomingAdjList(fragment.Vertex(v), ts.label)
}

func (ts *TopoStorage) GetNeighbors(src storage.IdType) storage.IdArray {
	return fragment.NewMultiView(ts.out(src).NeighborView())
}

// GetOutEdges is index aligned with GetNeighbors
func (ts *TopoStorage) GetOutEdges(src storage.IdType) storage.IdArray {
	return fragment.NewMultiView(ts.out(src).EdgeView())
}

func (ts *TopoStorage) GetInNeighbors(dst storage.IdType) storage.IdArray {
	return fragment.NewMultiView(ts.in(dst).NeighborView())
}

func (ts *TopoStorage) GetInEdges(dst storage.IdType) storage.IdArray {
	return fragment.NewMultiView(ts.in(dst).EdgeView())
}

func (ts *TopoStorage) GetOutDegree(src storage.IdType) int {
	return ts.frag.LocalOutDegree(fragment.Vertex(src), ts.label)
}

func (ts *TopoStorage) GetInDegree(dst storage.IdType) int {
	return ts.frag.LocalInDegree(fragment.Vertex(dst), ts.label)
}

func (ts *TopoStorage) eachVertex(fn func(v fragment.Vertex)) {
	for l := 0; l < ts.frag.VertexLabelNum(); l++ {
		vr := ts.frag.InnerVertices(fragment.LabelID(l))
		for v := vr.Begin; v < vr.End; v++ {
			fn(v)
		}
	}
}

// GetAllSrcIds lists each vertex with at least one outgoing edge once
func (ts *TopoStorage) GetAllSrcIds() []storage.IdType {
	ids := []storage.IdType{}
	ts.eachVertex(func(v fragment.Vertex) {
		if ts.frag.HasChild(v, ts.label) {
			ids = append(ids, storage.IdType(v))
		}
	})
	return ids
}

// GetAllDstIds lists each vertex with at least one incoming edge once
func (ts *TopoStorage) GetAllDstIds() []storage.IdType {
	ids := []storage.IdType{}
	ts.eachVertex(func(v fragment.Vertex) {
		if ts.frag.HasParent(v, ts.label) {
			ids = append(ids, storage.IdType(v))
		}
	})
	return ids
}

// GetAllOutDegrees is aligned with GetAllSrcIds
func (ts *TopoStorage) GetAllOutDegrees() []int {
	degrees := []int{}
	ts.eachVertex(func(v fragment.Vertex) {
		if d := ts.frag.LocalOutDegree(v, ts.label); d > 0 {
			degrees = append(degrees, d)
		}
	})
	return degrees
}

// GetAllInDegrees is aligned with GetAllDstIds
func (ts *TopoStorage) GetAllInDegrees() []int {
	degrees := []int{}
	ts.eachVertex(func(v fragment.Vertex) {
		if d := ts.frag.LocalInDegree(v, ts.label); d > 0 {
			degrees = append(degrees, d)
		}
	})
	return degrees
}
