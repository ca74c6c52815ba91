package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

const DefaultBackend = "columnar"

type (
	// Config selects a backend and says where its graph lives
	Config struct {
		// Backend is a registered backend name, DefaultBackend when empty
		Backend string
		// Endpoint is the store connection endpoint, e.g. memory://local
		Endpoint string
		// GraphID is the store object id of the graph
		GraphID string
		// Create lets a writable backend make an empty storage for a label it
		// has not seen. Read-only backends ignore it.
		Create bool
	}

	// Backend creates storages bound to one label. Labels are given by name or
	// by decimal id.
	Backend interface {
		NewNodeStorage(ctx context.Context, cfg Config, nodeType string) (NodeStorage, error)
		NewEdgeStorage(ctx context.Context, cfg Config, edgeType string) (EdgeStorage, error)
		NewGraphStorage(ctx context.Context, cfg Config, edgeType string) (GraphStorage, error)
		NewTopoStorage(ctx context.Context, cfg Config, edgeType string) (TopoStorage, error)
	}
)

var (
	backends   = map[string]Backend{}
	backendsMu sync.RWMutex
)

// RegisterBackend makes a backend available under name. Backend packages call
// this from init().
func RegisterBackend(name string, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = b
}

// Backends lists the registered backend names
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolveBackend(cfg Config) (Backend, error) {
	name := cfg.Backend
	if name == "" {
		name = DefaultBackend
	}
	backendsMu.RLock()
	b, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return b, nil
}

func NewNodeStorage(ctx context.Context, cfg Config, nodeType string) (NodeStorage, error) {
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	return b.NewNodeStorage(ctx, cfg, nodeType)
}

func NewEdgeStorage(ctx context.Context, cfg Config, edgeType string) (EdgeStorage, error) {
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	return b.NewEdgeStorage(ctx, cfg, edgeType)
}

func NewGraphStorage(ctx context.Context, cfg Config, edgeType string) (GraphStorage, error) {
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	return b.NewGraphStorage(ctx, cfg, edgeType)
}

func NewTopoStorage(ctx context.Context, cfg Config, edgeType string) (TopoStorage, error) {
	b, err := resolveBackend(cfg)
	if err != nil {
		return nil, err
	}
	return b.NewTopoStorage(ctx, cfg, edgeType)
}
