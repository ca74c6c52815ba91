package memory

import (
	"fmt"
	"sync"

	"github.com/danthegoodman1/icegraph/storage"
)

// GraphStorage keeps edges and their topology together
type GraphStorage struct {
	*TopoStorage
	mu    sync.Mutex
	edges *EdgeStorage
}

var _ storage.GraphStorage = (*GraphStorage)(nil)

func NewGraphStorage() *GraphStorage {
	return &GraphStorage{
		TopoStorage: NewTopoStorage(),
		edges:       NewEdgeStorage(),
	}
}

func (gs *GraphStorage) Lock()   { gs.mu.Lock() }
func (gs *GraphStorage) Unlock() { gs.mu.Unlock() }
func (gs *GraphStorage) Build()  {}

func (gs *GraphStorage) SetSideInfo(info *storage.SideInfo) {
	gs.edges.SetSideInfo(info)
}

func (gs *GraphStorage) GetSideInfo() *storage.SideInfo {
	return gs.edges.GetSideInfo()
}

// Add stores the edge and links it into the topology. edgeID must be the next
// edge id, or negative to take the next one.
func (gs *GraphStorage) Add(edgeID storage.IdType, value *storage.EdgeValue) error {
	if edgeID >= 0 && edgeID != gs.edges.Size() {
		return fmt.Errorf("%w: got %d, next is %d", ErrUnknownEdge, edgeID, gs.edges.Size())
	}
	id, err := gs.edges.Add(value)
	if err != nil {
		return err
	}
	return gs.TopoStorage.Add(id, value)
}

func (gs *GraphStorage) GetEdgeCount() storage.IdType {
	return gs.edges.Size()
}

func (gs *GraphStorage) GetEdges() storage.EdgeStorage {
	return gs.edges
}
