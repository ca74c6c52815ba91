package columnar

import (
	"fmt"

	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
)

// EdgeStorage reads the edges of one label out of a fragment. The fragment
// exposes no dense edge id space to this storage, so lookups by edge id are
// not implemented.
type EdgeStorage struct {
	frag  fragment.Fragment
	label fragment.LabelID
	name  string
	cache *SideInfoCache
}

var _ storage.EdgeStorage = (*EdgeStorage)(nil)

func NewEdgeStorage(f fragment.Fragment, edgeType string, cache *SideInfoCache) (*EdgeStorage, error) {
	label, err := resolveEdgeLabel(f, edgeType)
	if err != nil {
		return nil, err
	}
	return &EdgeStorage{
		frag:  f,
		label: label,
		name:  f.EdgeLabelName(label),
		cache: cache,
	}, nil
}

func (es *EdgeStorage) Build() {}

func (es *EdgeStorage) SetSideInfo(*storage.SideInfo) {}

func (es *EdgeStorage) GetSideInfo() *storage.SideInfo {
	return es.cache.Get(es.frag, es.label, es.frag.EdgeDataTable(es.label))
}

func (es *EdgeStorage) Size() storage.IdType {
	return storage.IdType(es.frag.EdgeDataTable(es.label).NumRows())
}

func (es *EdgeStorage) Add(*storage.EdgeValue) (storage.IdType, error) {
	return -1, fmt.Errorf("%w: edge insert", storage.ErrNotSupported)
}

func notImplemented(op string) error {
	return fmt.Errorf("%w: %s by edge id", storage.ErrNotImplemented, op)
}

func (es *EdgeStorage) GetSrcId(storage.IdType) (storage.IdType, error) {
	return 0, notImplemented("GetSrcId")
}

func (es *EdgeStorage) GetDstId(storage.IdType) (storage.IdType, error) {
	return 0, notImplemented("GetDstId")
}

func (es *EdgeStorage) GetWeight(storage.IdType) (float32, error) {
	return 0, notImplemented("GetWeight")
}

func (es *EdgeStorage) GetLabel(storage.IdType) (int32, error) {
	return 0, notImplemented("GetLabel")
}

func (es *EdgeStorage) GetAttribute(storage.IdType) (attribute.Value, error) {
	return attribute.Value{}, notImplemented("GetAttribute")
}

// walkOut visits every outgoing adjacency entry under the label, vertex label
// by vertex label and vertex by vertex
func (es *EdgeStorage) walkOut(fn func(src fragment.Vertex, adj fragment.AdjList)) {
	for l := 0; l < es.frag.VertexLabelNum(); l++ {
		vr := es.frag.InnerVertices(fragment.LabelID(l))
		for v := vr.Begin; v < vr.End; v++ {
			adj := es.frag.OutgoingAdjList(v, es.label)
			if !adj.Empty() {
				fn(v, adj)
			}
		}
	}
}

// GetSrcIds lists the source of every adjacency entry. It is aligned with
// GetDstIds and keeps duplicates.
func (es *EdgeStorage) GetSrcIds() []storage.IdType {
	ids := make([]storage.IdType, 0, es.Size())
	es.walkOut(func(src fragment.Vertex, adj fragment.AdjList) {
		for i := 0; i < adj.Size(); i++ {
			ids = append(ids, storage.IdType(src))
		}
	})
	return ids
}

func (es *EdgeStorage) GetDstIds() []storage.IdType {
	ids := make([]storage.IdType, 0, es.Size())
	es.walkOut(func(_ fragment.Vertex, adj fragment.AdjList) {
		ids = fragment.NewMultiView(adj.NeighborView()).AppendTo(ids)
	})
	return ids
}

func (es *EdgeStorage) GetWeights() ([]float32, bool) {
	return allWeights(es.frag.EdgeDataTable(es.label), es.name)
}

func (es *EdgeStorage) GetLabels() ([]int32, bool) {
	return allLabels(es.frag.EdgeDataTable(es.label), es.name)
}

func (es *EdgeStorage) GetAttributes() ([]attribute.Value, bool) {
	return allAttributes(es.frag.EdgeDataTable(es.label), edgeKeyColumns, es.name)
}
