package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/danthegoodman1/icegraph/storage"
)

const BackendName = "memory"

func init() {
	storage.RegisterBackend(BackendName, NewBackend())
}

type (
	storageKey struct {
		endpoint string
		graphID  string
		label    string
	}

	// Backend hands out one storage per (endpoint, graph, label) so every
	// caller sees the same mutable data. A storage only comes into being when
	// asked for with Config.Create, other lookups of unseen keys fail with
	// storage.ErrUnknownLabel.
	Backend struct {
		mu     sync.Mutex
		nodes  map[storageKey]*NodeStorage
		graphs map[storageKey]*GraphStorage
		topos  map[storageKey]*TopoStorage
	}
)

var _ storage.Backend = (*Backend)(nil)

func NewBackend() *Backend {
	return &Backend{
		nodes:  map[storageKey]*NodeStorage{},
		graphs: map[storageKey]*GraphStorage{},
		topos:  map[storageKey]*TopoStorage{},
	}
}

func keyOf(cfg storage.Config, label string) storageKey {
	return storageKey{endpoint: cfg.Endpoint, graphID: cfg.GraphID, label: label}
}

// lookup finds the storage under k, creating it with create when cfg allows.
// Callers hold b.mu.
func lookup[S any](m map[storageKey]S, cfg storage.Config, label string, create func() S) (S, error) {
	k := keyOf(cfg, label)
	s, ok := m[k]
	if ok {
		return s, nil
	}
	if !cfg.Create {
		return s, fmt.Errorf("%w: %q in graph %q at %q", storage.ErrUnknownLabel, label, cfg.GraphID, cfg.Endpoint)
	}
	s = create()
	m[k] = s
	return s, nil
}

func (b *Backend) NewNodeStorage(_ context.Context, cfg storage.Config, nodeType string) (storage.NodeStorage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ns, err := lookup(b.nodes, cfg, nodeType, NewNodeStorage)
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (b *Backend) graph(cfg storage.Config, edgeType string) (*GraphStorage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return lookup(b.graphs, cfg, edgeType, NewGraphStorage)
}

// NewEdgeStorage returns the edges of the label's graph storage
func (b *Backend) NewEdgeStorage(_ context.Context, cfg storage.Config, edgeType string) (storage.EdgeStorage, error) {
	gs, err := b.graph(cfg, edgeType)
	if err != nil {
		return nil, err
	}
	return gs.edges, nil
}

func (b *Backend) NewGraphStorage(_ context.Context, cfg storage.Config, edgeType string) (storage.GraphStorage, error) {
	gs, err := b.graph(cfg, edgeType)
	if err != nil {
		return nil, err
	}
	return gs, nil
}

// NewTopoStorage returns a standalone topology, separate from the graph
// storage of the same label
func (b *Backend) NewTopoStorage(_ context.Context, cfg storage.Config, edgeType string) (storage.TopoStorage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ts, err := lookup(b.topos, cfg, edgeType, NewTopoStorage)
	if err != nil {
		return nil, err
	}
	return ts, nil
}
