// Package fragment is the immutable, partitioned property-graph snapshot the
// storage adapters read from. Vertex and edge properties live in columnar tables,
// one per label, and adjacency is packed into contiguous neighbor units.
//
// Nothing in a fragment is mutated after Build. Tables, adjacency memory and the
// views handed out over it are shared read-only with every reader.
package fragment

import (
	"errors"

	"github.com/danthegoodman1/icegraph/table"
)

var (
	ErrUnknownVertex   = errors.New("unknown vertex")
	ErrDuplicateVertex = errors.New("duplicate vertex id")
	ErrBadLabel        = errors.New("bad label")
	ErrBadTable        = errors.New("bad table layout")
	ErrTooManyLabels   = errors.New("too many labels")
)

type (
	// ObjectID identifies a fragment within a store
	ObjectID string
	LabelID  int
	EdgeID   int64

	Fragment interface {
		ID() ObjectID

		VertexLabelNum() int
		EdgeLabelNum() int
		VertexLabelName(label LabelID) string
		EdgeLabelName(label LabelID) string
		VertexLabelID(name string) (LabelID, bool)
		EdgeLabelID(name string) (LabelID, bool)

		InnerVertices(label LabelID) VertexRange
		InnerVerticesNum(label LabelID) int64
		VertexLabel(v Vertex) LabelID
		VertexOffset(v Vertex) int64
		// GetOid returns the original id of v, read from the first vertex table column
		GetOid(v Vertex) int64
		GetVertex(label LabelID, oid int64) (Vertex, bool)

		VertexDataTable(label LabelID) *table.Table
		EdgeDataTable(label LabelID) *table.Table

		OutgoingAdjList(v Vertex, edgeLabel LabelID) AdjList
		IncomingAdjList(v Vertex, edgeLabel LabelID) AdjList
		HasChild(v Vertex, edgeLabel LabelID) bool
		HasParent(v Vertex, edgeLabel LabelID) bool
		LocalOutDegree(v Vertex, edgeLabel LabelID) int
		LocalInDegree(v Vertex, edgeLabel LabelID) int
	}
)
