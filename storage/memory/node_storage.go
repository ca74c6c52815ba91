// Package memory is a mutable, row oriented storage backend kept entirely in
// process. It registers itself as the "memory" backend and is interchangeable
// with the columnar backend for every read.
//
// Writers serialize Add calls with Lock and Unlock and call Build once loading
// is done. Reads after Build need no locking.
package memory

import (
	"fmt"
	"sync"

	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/storage"
)

type NodeStorage struct {
	mu       sync.Mutex
	sideInfo *storage.SideInfo

	ids     []storage.IdType
	index   map[storage.IdType]int
	weights []float32
	labels  []int32
	attrs   []attribute.Value
}

var _ storage.NodeStorage = (*NodeStorage)(nil)

func NewNodeStorage() *NodeStorage {
	return &NodeStorage{
		sideInfo: &storage.SideInfo{},
		index:    map[storage.IdType]int{},
	}
}

func (ns *NodeStorage) Lock()   { ns.mu.Lock() }
func (ns *NodeStorage) Unlock() { ns.mu.Unlock() }
func (ns *NodeStorage) Build()  {}

// SetSideInfo declares which optional columns the nodes carry
func (ns *NodeStorage) SetSideInfo(info *storage.SideInfo) {
	if info != nil {
		ns.sideInfo = info
	}
}

func (ns *NodeStorage) GetSideInfo() *storage.SideInfo {
	return ns.sideInfo
}

func (ns *NodeStorage) Size() storage.IdType {
	return storage.IdType(len(ns.ids))
}

// Add appends a node, or overwrites it when the id was added before
func (ns *NodeStorage) Add(value *storage.NodeValue) error {
	if value == nil {
		return fmt.Errorf("%w: nil node", ErrBadValue)
	}
	if row, ok := ns.index[value.ID]; ok {
		ns.weights[row] = value.Weight
		ns.labels[row] = value.Label
		ns.attrs[row] = value.Attribute
		return nil
	}
	ns.index[value.ID] = len(ns.ids)
	ns.ids = append(ns.ids, value.ID)
	ns.weights = append(ns.weights, value.Weight)
	ns.labels = append(ns.labels, value.Label)
	ns.attrs = append(ns.attrs, value.Attribute)
	return nil
}

func (ns *NodeStorage) GetWeight(id storage.IdType) float32 {
	if row, ok := ns.index[id]; ok && ns.sideInfo.Format.IsWeighted() {
		return ns.weights[row]
	}
	return 0
}

func (ns *NodeStorage) GetLabel(id storage.IdType) int32 {
	if row, ok := ns.index[id]; ok && ns.sideInfo.Format.IsLabeled() {
		return ns.labels[row]
	}
	return 0
}

func (ns *NodeStorage) GetAttribute(id storage.IdType) attribute.Value {
	if row, ok := ns.index[id]; ok && ns.sideInfo.Format.IsAttributed() {
		return ns.attrs[row]
	}
	return attribute.Value{}
}

func (ns *NodeStorage) GetIds() []storage.IdType {
	return append([]storage.IdType(nil), ns.ids...)
}

func (ns *NodeStorage) GetWeights() ([]float32, bool) {
	if !ns.sideInfo.Format.IsWeighted() {
		return nil, false
	}
	return append([]float32(nil), ns.weights...), true
}

func (ns *NodeStorage) GetLabels() ([]int32, bool) {
	if !ns.sideInfo.Format.IsLabeled() {
		return nil, false
	}
	return append([]int32(nil), ns.labels...), true
}

func (ns *NodeStorage) GetAttributes() ([]attribute.Value, bool) {
	if !ns.sideInfo.Format.IsAttributed() {
		return nil, false
	}
	return append([]attribute.Value(nil), ns.attrs...), true
}
