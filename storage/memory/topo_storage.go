package memory

import (
	"fmt"

	"github.com/danthegoodman1/icegraph/storage"
)

type adjacency struct {
	nbrs  []storage.IdType
	edges []storage.IdType
}

// TopoStorage keeps per vertex adjacency lists in insertion order. Vertices are
// reported in the order their first edge was added.
type TopoStorage struct {
	out map[storage.IdType]*adjacency
	in  map[storage.IdType]*adjacency

	srcOrder []storage.IdType
	dstOrder []storage.IdType
}

var _ storage.TopoStorage = (*TopoStorage)(nil)

func NewTopoStorage() *TopoStorage {
	return &TopoStorage{
		out: map[storage.IdType]*adjacency{},
		in:  map[storage.IdType]*adjacency{},
	}
}

func (ts *TopoStorage) Add(edgeID storage.IdType, value *storage.EdgeValue) error {
	if value == nil {
		return fmt.Errorf("%w: nil edge", ErrBadValue)
	}
	out, ok := ts.out[value.SrcID]
	if !ok {
		out = &adjacency{}
		ts.out[value.SrcID] = out
		ts.srcOrder = append(ts.srcOrder, value.SrcID)
	}
	out.nbrs = append(out.nbrs, value.DstID)
	out.edges = append(out.edges, edgeID)

	in, ok := ts.in[value.DstID]
	if !ok {
		in = &adjacency{}
		ts.in[value.DstID] = in
		ts.dstOrder = append(ts.dstOrder, value.DstID)
	}
	in.nbrs = append(in.nbrs, value.SrcID)
	in.edges = append(in.edges, edgeID)
	return nil
}

func view(adj map[storage.IdType]*adjacency, v storage.IdType, edges bool) storage.IdArray {
	a, ok := adj[v]
	if !ok {
		return storage.SliceIdArray(nil)
	}
	if edges {
		return storage.SliceIdArray(a.edges)
	}
	return storage.SliceIdArray(a.nbrs)
}

func (ts *TopoStorage) GetNeighbors(src storage.IdType) storage.IdArray {
	return view(ts.out, src, false)
}

func (ts *TopoStorage) GetOutEdges(src storage.IdType) storage.IdArray {
	return view(ts.out, src, true)
}

func (ts *TopoStorage) GetInNeighbors(dst storage.IdType) storage.IdArray {
	return view(ts.in, dst, false)
}

func (ts *TopoStorage) GetInEdges(dst storage.IdType) storage.IdArray {
	return view(ts.in, dst, true)
}

func (ts *TopoStorage) GetOutDegree(src storage.IdType) int {
	return ts.GetNeighbors(src).Size()
}

func (ts *TopoStorage) GetInDegree(dst storage.IdType) int {
	return ts.GetInNeighbors(dst).Size()
}

func (ts *TopoStorage) GetAllSrcIds() []storage.IdType {
	return append([]storage.IdType{}, ts.srcOrder...)
}

func (ts *TopoStorage) GetAllDstIds() []storage.IdType {
	return append([]storage.IdType{}, ts.dstOrder...)
}

func (ts *TopoStorage) GetAllOutDegrees() []int {
	degrees := make([]int, len(ts.srcOrder))
	for i, v := range ts.srcOrder {
		degrees[i] = len(ts.out[v].nbrs)
	}
	return degrees
}

func (ts *TopoStorage) GetAllInDegrees() []int {
	degrees := make([]int, len(ts.dstOrder))
	for i, v := range ts.dstOrder {
		degrees[i] = len(ts.in[v].nbrs)
	}
	return degrees
}
