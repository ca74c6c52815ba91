package metastore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type (
	MemoryMetaStore struct {
		mu     sync.RWMutex
		graphs map[string]GraphManifest
	}
)

func NewMemoryMetaStore() *MemoryMetaStore {
	return &MemoryMetaStore{
		graphs: map[string]GraphManifest{},
	}
}

func (mms *MemoryMetaStore) GetGraph(_ context.Context, id string) (GraphManifest, error) {
	mms.mu.RLock()
	defer mms.mu.RUnlock()
	m, ok := mms.graphs[id]
	if !ok {
		return GraphManifest{}, fmt.Errorf("%w: %s", ErrGraphNotFound, id)
	}
	return m, nil
}

func (mms *MemoryMetaStore) ListGraphs(_ context.Context) ([]GraphManifest, error) {
	mms.mu.RLock()
	defer mms.mu.RUnlock()
	graphs := make([]GraphManifest, 0, len(mms.graphs))
	for _, m := range mms.graphs {
		graphs = append(graphs, m)
	}
	sort.Slice(graphs, func(i, j int) bool {
		return graphs[i].ID < graphs[j].ID
	})
	return graphs, nil
}

func (mms *MemoryMetaStore) CreateGraph(_ context.Context, m GraphManifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	mms.mu.Lock()
	defer mms.mu.Unlock()
	if _, exists := mms.graphs[m.ID]; exists {
		return fmt.Errorf("%w: %s", ErrGraphExists, m.ID)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	mms.graphs[m.ID] = m
	return nil
}

func (mms *MemoryMetaStore) Shutdown(_ context.Context) error {
	return nil
}
