package columnar

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/table"
)

const (
	nodeKeyColumns = 0
	// edge tables lead with the src and dst key columns
	edgeKeyColumns = 2
)

type (
	// sideInfoKey holds the fragment itself: object ids are only unique
	// within one store endpoint
	sideInfoKey struct {
		frag  fragment.Fragment
		label fragment.LabelID
	}

	// SideInfoCache memoizes one SideInfo per (fragment, label). Fragment
	// implementations must be comparable, e.g. pointers. Entries are never
	// evicted or modified, so the pointers it hands out can be shared.
	SideInfoCache struct {
		skipColumns int

		mu      sync.Mutex
		entries map[sideInfoKey]*storage.SideInfo
		builds  atomic.Int64
	}
)

func NewNodeSideInfoCache() *SideInfoCache {
	return newSideInfoCache(nodeKeyColumns)
}

func NewEdgeSideInfoCache() *SideInfoCache {
	return newSideInfoCache(edgeKeyColumns)
}

func newSideInfoCache(skipColumns int) *SideInfoCache {
	return &SideInfoCache{
		skipColumns: skipColumns,
		entries:     map[sideInfoKey]*storage.SideInfo{},
	}
}

// Get returns the cached descriptor for label of f, computing it from t on
// first use. Concurrent first calls construct exactly one descriptor.
func (c *SideInfoCache) Get(f fragment.Fragment, label fragment.LabelID, t *table.Table) *storage.SideInfo {
	key := sideInfoKey{frag: f, label: label}
	c.mu.Lock()
	defer c.mu.Unlock()
	if info, ok := c.entries[key]; ok {
		return info
	}
	info := buildSideInfo(t, c.skipColumns, label)
	c.builds.Add(1)
	c.entries[key] = info
	return info
}

func buildSideInfo(t *table.Table, skipColumns int, label fragment.LabelID) *storage.SideInfo {
	info := &storage.SideInfo{
		Format: storage.FormatDefault,
		Type:   strconv.Itoa(int(label)),
	}
	for i := skipColumns; i < t.NumColumns(); i++ {
		switch t.Schema().Field(i).Type {
		case table.Int32, table.Int64:
			info.INum++
		case table.Float, table.Double:
			info.FNum++
		case table.String:
			info.SNum++
		}
	}
	if t.NumColumns() > skipColumns {
		info.Format |= storage.FormatAttributed
	}
	return info
}
