// Package storage defines the per-entity and topology storage contract the
// sampling engine reads from. Backends register themselves by name and are
// selected through Config at construction time, so engine code never depends
// on which backend is active.
package storage

import (
	"errors"

	"github.com/danthegoodman1/icegraph/attribute"
)

var (
	// ErrNotSupported is returned by mutation operations on read-only backends
	ErrNotSupported = errors.New("operation not supported by this storage backend")
	// ErrNotImplemented is returned by lookups a backend does not provide
	ErrNotImplemented = errors.New("operation not implemented by this storage backend")

	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrUnknownLabel   = errors.New("unknown label")
)

type (
	IdType = int64

	// IdArray is a read-only, indexable sequence of ids. Implementations may be
	// views over backend memory; callers must not assume a copy was made.
	IdArray interface {
		Size() int
		At(i int) IdType
	}

	NodeValue struct {
		ID        IdType
		Weight    float32
		Label     int32
		Attribute attribute.Value
	}

	EdgeValue struct {
		SrcID     IdType
		DstID     IdType
		Weight    float32
		Label     int32
		Attribute attribute.Value
	}

	NodeStorage interface {
		Lock()
		Unlock()

		SetSideInfo(info *SideInfo)
		GetSideInfo() *SideInfo

		// Build reorganizes data once it is fixed
		Build()
		Size() IdType
		Add(value *NodeValue) error

		// Per-node lookups return a zero value when the column is missing
		GetWeight(id IdType) float32
		GetLabel(id IdType) int32
		GetAttribute(id IdType) attribute.Value

		// GetIds returns the distinct ids of every node, len == Size()
		GetIds() []IdType
		// Bulk getters return false when the backing column does not exist
		GetWeights() ([]float32, bool)
		GetLabels() ([]int32, bool)
		GetAttributes() ([]attribute.Value, bool)
	}

	EdgeStorage interface {
		SetSideInfo(info *SideInfo)
		GetSideInfo() *SideInfo

		Build()
		Size() IdType
		Add(value *EdgeValue) (IdType, error)

		GetSrcId(edgeID IdType) (IdType, error)
		GetDstId(edgeID IdType) (IdType, error)
		GetWeight(edgeID IdType) (float32, error)
		GetLabel(edgeID IdType) (int32, error)
		GetAttribute(edgeID IdType) (attribute.Value, error)

		// GetSrcIds and GetDstIds are positionally aligned and not distinct,
		// len == Size()
		GetSrcIds() []IdType
		GetDstIds() []IdType
		GetWeights() ([]float32, bool)
		GetLabels() ([]int32, bool)
		GetAttributes() ([]attribute.Value, bool)
	}

	TopoStorage interface {
		Add(edgeID IdType, value *EdgeValue) error

		GetNeighbors(src IdType) IdArray
		GetOutEdges(src IdType) IdArray
		GetInNeighbors(dst IdType) IdArray
		GetInEdges(dst IdType) IdArray
		GetOutDegree(src IdType) int
		GetInDegree(dst IdType) int

		// GetAllSrcIds and GetAllDstIds are distinct
		GetAllSrcIds() []IdType
		GetAllDstIds() []IdType
		GetAllOutDegrees() []int
		GetAllInDegrees() []int
	}

	GraphStorage interface {
		TopoStorage

		Lock()
		Unlock()
		SetSideInfo(info *SideInfo)
		GetSideInfo() *SideInfo
		Build()

		GetEdgeCount() IdType
		GetEdges() EdgeStorage
	}
)

// SliceIdArray adapts a plain slice to IdArray
type SliceIdArray []IdType

func (s SliceIdArray) Size() int {
	return len(s)
}

func (s SliceIdArray) At(i int) IdType {
	return s[i]
}

// ToSlice copies an IdArray into a new slice
func ToSlice(a IdArray) []IdType {
	out := make([]IdType, a.Size())
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}
