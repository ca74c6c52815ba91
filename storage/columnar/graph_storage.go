package columnar

import (
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
)

// GraphStorage is the topology of one edge label plus access to its edges
type GraphStorage struct {
	*TopoStorage
	edges *EdgeStorage
}

var _ storage.GraphStorage = (*GraphStorage)(nil)

func NewGraphStorage(f fragment.Fragment, edgeType string, cache *SideInfoCache) (*GraphStorage, error) {
	topo, err := NewTopoStorage(f, edgeType)
	if err != nil {
		return nil, err
	}
	edges, err := NewEdgeStorage(f, edgeType, cache)
	if err != nil {
		return nil, err
	}
	return &GraphStorage{TopoStorage: topo, edges: edges}, nil
}

func (gs *GraphStorage) Lock()   {}
func (gs *GraphStorage) Unlock() {}
func (gs *GraphStorage) Build()  {}

func (gs *GraphStorage) SetSideInfo(*storage.SideInfo) {}

func (gs *GraphStorage) GetSideInfo() *storage.SideInfo {
	return gs.edges.GetSideInfo()
}

func (gs *GraphStorage) GetEdgeCount() storage.IdType {
	return gs.edges.Size()
}

func (gs *GraphStorage) GetEdges() storage.EdgeStorage {
	return gs.edges
}
