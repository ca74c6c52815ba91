// Package store connects to a graph store endpoint and hands out fragments by
// object id. Fragments are loaded at most once per client and kept for its lifetime.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/danthegoodman1/icegraph/crdb"
	"github.com/danthegoodman1/icegraph/datastore"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/gologger"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var (
	logger = gologger.NewComponentLogger("store")

	ErrUnknownEndpoint = errors.New("unknown store endpoint")
	ErrObjectNotFound  = errors.New("graph object not found")
)

type (
	// Source resolves graph object ids into fragments
	Source interface {
		LoadFragment(ctx context.Context, id fragment.ObjectID) (fragment.Fragment, error)
		Close(ctx context.Context) error
	}

	Client struct {
		endpoint string
		source   Source

		group     singleflight.Group
		mu        sync.RWMutex
		fragments map[fragment.ObjectID]fragment.Fragment
	}
)

// Connect opens a client for endpoint. Supported schemes are memory://<name>
// for a registered MemoryServer, postgres:// or postgresql:// for a
// CockroachDB catalog and redis:// for a redis catalog. Catalogs read table
// data from the DATASTORE data store.
func Connect(ctx context.Context, endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnknownEndpoint, endpoint, err)
	}

	var source Source
	switch u.Scheme {
	case "memory":
		srv, ok := lookupMemoryServer(u.Host)
		if !ok {
			return nil, fmt.Errorf("%w: no memory server named %q", ErrUnknownEndpoint, u.Host)
		}
		source = srv
	case "postgres", "postgresql":
		pool, err := crdb.ConnectToDB(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("error in crdb.ConnectToDB: %w", err)
		}
		if source, err = newLoader(metastore.NewCRDBMetaStore(pool)); err != nil {
			return nil, err
		}
	case "redis", "rediss":
		opts, err := redis.ParseURL(endpoint)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrUnknownEndpoint, endpoint, err)
		}
		meta, err := metastore.NewRedisMetaStore(ctx, opts, true)
		if err != nil {
			return nil, fmt.Errorf("error in metastore.NewRedisMetaStore: %w", err)
		}
		if source, err = newLoader(meta); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrUnknownEndpoint, u.Scheme)
	}

	logger.Debug().Str("endpoint", u.Redacted()).Msg("connected to graph store")
	return NewClient(endpoint, source), nil
}

// newLoader pairs meta with the DATASTORE data store, shutting meta down when
// the data store cannot be opened
func newLoader(meta metastore.MetaStore) (*Loader, error) {
	data, err := datastore.NewDataStoreFromEnv()
	if err != nil {
		meta.Shutdown(context.Background())
		return nil, fmt.Errorf("error in datastore.NewDataStoreFromEnv: %w", err)
	}
	return &Loader{Meta: meta, Data: data}, nil
}

// NewClient wraps an already open source
func NewClient(endpoint string, source Source) *Client {
	return &Client{
		endpoint:  endpoint,
		source:    source,
		fragments: map[fragment.ObjectID]fragment.Fragment{},
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) cached(id fragment.ObjectID) (fragment.Fragment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fragments[id]
	return f, ok
}

// GetFragment returns the fragment for id, loading it on first use. Concurrent
// first calls share one load. Failed loads are not cached.
func (c *Client) GetFragment(ctx context.Context, id fragment.ObjectID) (fragment.Fragment, error) {
	if f, ok := c.cached(id); ok {
		return f, nil
	}
	v, err, _ := c.group.Do(string(id), func() (any, error) {
		if f, ok := c.cached(id); ok {
			return f, nil
		}
		zerolog.Ctx(ctx).Debug().Str("objectID", string(id)).Msg("loading fragment")
		f, err := c.source.LoadFragment(ctx, id)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.fragments[id] = f
		c.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading fragment %s: %w", id, err)
	}
	return v.(fragment.Fragment), nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.source.Close(ctx)
}
