package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/danthegoodman1/icegraph/fragment"
)

type (
	// MemoryServer is a process local store of already built fragments,
	// reachable as memory://<name> once registered.
	MemoryServer struct {
		mu        sync.RWMutex
		fragments map[fragment.ObjectID]fragment.Fragment
	}
)

var (
	memoryServersMu sync.RWMutex
	memoryServers   = map[string]*MemoryServer{}
)

func NewMemoryServer() *MemoryServer {
	return &MemoryServer{
		fragments: map[fragment.ObjectID]fragment.Fragment{},
	}
}

// RegisterMemoryServer makes srv reachable as memory://name, replacing any
// server registered under the same name.
func RegisterMemoryServer(name string, srv *MemoryServer) {
	memoryServersMu.Lock()
	defer memoryServersMu.Unlock()
	memoryServers[name] = srv
}

func UnregisterMemoryServer(name string) {
	memoryServersMu.Lock()
	defer memoryServersMu.Unlock()
	delete(memoryServers, name)
}

func lookupMemoryServer(name string) (*MemoryServer, bool) {
	memoryServersMu.RLock()
	defer memoryServersMu.RUnlock()
	srv, ok := memoryServers[name]
	return srv, ok
}

// Put stores f under its own id
func (ms *MemoryServer) Put(f fragment.Fragment) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.fragments[f.ID()] = f
}

func (ms *MemoryServer) LoadFragment(_ context.Context, id fragment.ObjectID) (fragment.Fragment, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	f, ok := ms.fragments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	return f, nil
}

func (ms *MemoryServer) Close(_ context.Context) error {
	return nil
}
