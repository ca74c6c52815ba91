// Package columnar serves the storage contract directly from an immutable
// fragment. It registers itself as the "columnar" backend.
package columnar

import (
	"context"
	"fmt"
	"sync"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/store"
	"github.com/danthegoodman1/icegraph/utils"
	"github.com/rs/zerolog"
)

const BackendName = "columnar"

func init() {
	storage.RegisterBackend(BackendName, &Backend{})
}

// Backend opens one store client per endpoint and shares one node and one
// edge side info cache across every storage it creates.
type Backend struct {
	mu      sync.Mutex
	clients map[string]*store.Client

	cachesOnce sync.Once
	nodeCache  *SideInfoCache
	edgeCache  *SideInfoCache
}

var _ storage.Backend = (*Backend)(nil)

func (b *Backend) caches() (node, edge *SideInfoCache) {
	b.cachesOnce.Do(func() {
		b.nodeCache = NewNodeSideInfoCache()
		b.edgeCache = NewEdgeSideInfoCache()
	})
	return b.nodeCache, b.edgeCache
}

func (b *Backend) client(ctx context.Context, endpoint string) (*store.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.clients[endpoint]; ok {
		return c, nil
	}
	c, err := store.Connect(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if b.clients == nil {
		b.clients = map[string]*store.Client{}
	}
	b.clients[endpoint] = c
	return c, nil
}

// fragment resolves cfg to a loaded fragment. Failures are returned as is;
// nothing here retries.
func (b *Backend) fragment(ctx context.Context, cfg storage.Config) (fragment.Fragment, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = utils.GRAPH_STORE_ENDPOINT
	}
	graphID := cfg.GraphID
	if graphID == "" {
		graphID = utils.GRAPH_OBJECT_ID
	}
	c, err := b.client(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", endpoint, err)
	}
	f, err := c.GetFragment(ctx, fragment.ObjectID(graphID))
	if err != nil {
		return nil, fmt.Errorf("error in GetFragment: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("graphID", graphID).Msg("resolved fragment")
	return f, nil
}

func (b *Backend) NewNodeStorage(ctx context.Context, cfg storage.Config, nodeType string) (storage.NodeStorage, error) {
	f, err := b.fragment(ctx, cfg)
	if err != nil {
		return nil, err
	}
	nodeCache, _ := b.caches()
	ns, err := NewNodeStorage(f, nodeType, nodeCache)
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (b *Backend) NewEdgeStorage(ctx context.Context, cfg storage.Config, edgeType string) (storage.EdgeStorage, error) {
	f, err := b.fragment(ctx, cfg)
	if err != nil {
		return nil, err
	}
	_, edgeCache := b.caches()
	es, err := NewEdgeStorage(f, edgeType, edgeCache)
	if err != nil {
		return nil, err
	}
	return es, nil
}

func (b *Backend) NewGraphStorage(ctx context.Context, cfg storage.Config, edgeType string) (storage.GraphStorage, error) {
	f, err := b.fragment(ctx, cfg)
	if err != nil {
		return nil, err
	}
	_, edgeCache := b.caches()
	gs, err := NewGraphStorage(f, edgeType, edgeCache)
	if err != nil {
		return nil, err
	}
	return gs, nil
}

func (b *Backend) NewTopoStorage(ctx context.Context, cfg storage.Config, edgeType string) (storage.TopoStorage, error) {
	f, err := b.fragment(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ts, err := NewTopoStorage(f, edgeType)
	if err != nil {
		return nil, err
	}
	return ts, nil
}
