package columnar

import (
	"fmt"

	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/table"
)

// NodeStorage reads the vertices of one label straight out of a fragment.
// Ids are fragment vertex ids.
type NodeStorage struct {
	frag  fragment.Fragment
	label fragment.LabelID
	name  string
	cache *SideInfoCache
}

var _ storage.NodeStorage = (*NodeStorage)(nil)

func NewNodeStorage(f fragment.Fragment, nodeType string, cache *SideInfoCache) (*NodeStorage, error) {
	label, err := resolveVertexLabel(f, nodeType)
	if err != nil {
		return nil, err
	}
	return &NodeStorage{
		frag:  f,
		label: label,
		name:  f.VertexLabelName(label),
		cache: cache,
	}, nil
}

func (ns *NodeStorage) Lock()   {}
func (ns *NodeStorage) Unlock() {}
func (ns *NodeStorage) Build()  {}

func (ns *NodeStorage) SetSideInfo(*storage.SideInfo) {}

func (ns *NodeStorage) GetSideInfo() *storage.SideInfo {
	return ns.cache.Get(ns.frag, ns.label, ns.frag.VertexDataTable(ns.label))
}

func (ns *NodeStorage) Size() storage.IdType {
	return ns.frag.InnerVerticesNum(ns.label)
}

func (ns *NodeStorage) Add(*storage.NodeValue) error {
	return fmt.Errorf("%w: node insert", storage.ErrNotSupported)
}

// row locates id in the table of its own label. A vertex outside the fragment
// is a caller bug.
func (ns *NodeStorage) row(id storage.IdType) (*table.Table, int, string) {
	v := fragment.Vertex(id)
	label := ns.frag.VertexLabel(v)
	if label < 0 || int(label) >= ns.frag.VertexLabelNum() {
		panic(fmt.Sprintf("columnar: vertex %d has unknown label %d", id, label))
	}
	return ns.frag.VertexDataTable(label), int(ns.frag.VertexOffset(v)), ns.frag.VertexLabelName(label)
}

func (ns *NodeStorage) GetWeight(id storage.IdType) float32 {
	t, row, name := ns.row(id)
	return weightAt(t, row, name)
}

func (ns *NodeStorage) GetLabel(id storage.IdType) int32 {
	t, row, name := ns.row(id)
	return labelAt(t, row, name)
}

func (ns *NodeStorage) GetAttribute(id storage.IdType) attribute.Value {
	t, row, _ := ns.row(id)
	return attribute.DecodeRow(t, row, nodeKeyColumns)
}

func (ns *NodeStorage) GetIds() []storage.IdType {
	vr := ns.frag.InnerVertices(ns.label)
	ids := make([]storage.IdType, 0, vr.Size())
	for v := vr.Begin; v < vr.End; v++ {
		ids = append(ids, storage.IdType(v))
	}
	return ids
}

func (ns *NodeStorage) GetWeights() ([]float32, bool) {
	return allWeights(ns.frag.VertexDataTable(ns.label), ns.name)
}

func (ns *NodeStorage) GetLabels() ([]int32, bool) {
	return allLabels(ns.frag.VertexDataTable(ns.label), ns.name)
}

func (ns *NodeStorage) GetAttributes() ([]attribute.Value, bool) {
	return allAttributes(ns.frag.VertexDataTable(ns.label), nodeKeyColumns, ns.name)
}
