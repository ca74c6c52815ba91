package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/fragment/fragmenttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	loads atomic.Int64
	delay time.Duration
	snap  fragment.Fragment
}

func (cs *countingSource) LoadFragment(_ context.Context, id fragment.ObjectID) (fragment.Fragment, error) {
	cs.loads.Add(1)
	time.Sleep(cs.delay)
	if id != cs.snap.ID() {
		return nil, ErrObjectNotFound
	}
	return cs.snap, nil
}

func (cs *countingSource) Close(context.Context) error {
	return nil
}

func TestConnectMemory(t *testing.T) {
	ctx := context.Background()
	srv := NewMemoryServer()
	srv.Put(fragmenttest.NewSnapshot(t, "g1"))
	RegisterMemoryServer("store-test", srv)
	defer UnregisterMemoryServer("store-test")

	c, err := Connect(ctx, "memory://store-test")
	require.NoError(t, err)
	defer c.Close(ctx)
	assert.Equal(t, "memory://store-test", c.Endpoint())

	f, err := c.GetFragment(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, fragment.ObjectID("g1"), f.ID())

	again, err := c.GetFragment(ctx, "g1")
	require.NoError(t, err)
	assert.Same(t, f, again)

	_, err = c.GetFragment(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestConnectUnknownEndpoints(t *testing.T) {
	ctx := context.Background()
	for _, ep := range []string{"memory://nobody-registered-this", "mysql://localhost:3306", "redis://localhost:6379/not-a-db", "::not a url"} {
		_, err := Connect(ctx, ep)
		assert.ErrorIs(t, err, ErrUnknownEndpoint, ep)
	}
}

func TestGetFragmentLoadsOnce(t *testing.T) {
	src := &countingSource{delay: 20 * time.Millisecond, snap: fragmenttest.NewSnapshot(t, "g1")}
	c := NewClient("test://", src)

	var wg sync.WaitGroup
	results := make([]fragment.Fragment, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := c.GetFragment(context.Background(), "g1")
			assert.NoError(t, err)
			results[i] = f
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, src.loads.Load())
	for _, f := range results {
		assert.Same(t, results[0], f)
	}
}

func TestFailedLoadIsNotCached(t *testing.T) {
	src := &countingSource{snap: fragmenttest.NewSnapshot(t, "g1")}
	c := NewClient("test://", src)

	_, err := c.GetFragment(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = c.GetFragment(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.EqualValues(t, 2, src.loads.Load())
}
