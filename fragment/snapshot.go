package fragment

import (
	"github.com/danthegoodman1/icegraph/table"
)

type (
	// csr holds the packed adjacency of every vertex of one label under one edge
	// label. Vertex at offset i owns units [offsets[i], offsets[i+1]).
	csr struct {
		offsets []int
		units   []byte
	}

	// Snapshot is the in-memory Fragment produced by Builder
	Snapshot struct {
		id ObjectID

		vertexLabels []string
		edgeLabels   []string

		vertexTables []*table.Table
		edgeTables   []*table.Table
		oids         []table.Int64Column
		oidIndex     []map[int64]int64

		// indexed [vertex label][edge label]
		out [][]*csr
		in  [][]*csr
	}
)

var _ Fragment = (*Snapshot)(nil)

func (s *Snapshot) ID() ObjectID {
	return s.id
}

func (s *Snapshot) VertexLabelNum() int {
	return len(s.vertexLabels)
}

func (s *Snapshot) EdgeLabelNum() int {
	return len(s.edgeLabels)
}

func (s *Snapshot) VertexLabelName(label LabelID) string {
	return s.vertexLabels[label]
}

func (s *Snapshot) EdgeLabelName(label LabelID) string {
	return s.edgeLabels[label]
}

func (s *Snapshot) VertexLabelID(name string) (LabelID, bool) {
	return indexOf(s.vertexLabels, name)
}

func (s *Snapshot) EdgeLabelID(name string) (LabelID, bool) {
	return indexOf(s.edgeLabels, name)
}

func indexOf(names []string, name string) (LabelID, bool) {
	for i, n := range names {
		if n == name {
			return LabelID(i), true
		}
	}
	return -1, false
}

func (s *Snapshot) InnerVertices(label LabelID) VertexRange {
	return VertexRange{
		Begin: EncodeVertex(label, 0),
		End:   EncodeVertex(label, int64(s.vertexTables[label].NumRows())),
	}
}

func (s *Snapshot) InnerVerticesNum(label LabelID) int64 {
	return int64(s.vertexTables[label].NumRows())
}

func (s *Snapshot) VertexLabel(v Vertex) LabelID {
	return v.Label()
}

func (s *Snapshot) VertexOffset(v Vertex) int64 {
	return v.Offset()
}

func (s *Snapshot) GetOid(v Vertex) int64 {
	return s.oids[v.Label()][v.Offset()]
}

func (s *Snapshot) GetVertex(label LabelID, oid int64) (Vertex, bool) {
	if int(label) < 0 || int(label) >= len(s.oidIndex) {
		return 0, false
	}
	offset, ok := s.oidIndex[label][oid]
	if !ok {
		return 0, false
	}
	return EncodeVertex(label, offset), true
}

func (s *Snapshot) VertexDataTable(label LabelID) *table.Table {
	return s.vertexTables[label]
}

func (s *Snapshot) EdgeDataTable(label LabelID) *table.Table {
	return s.edgeTables[label]
}

func (s *Snapshot) OutgoingAdjList(v Vertex, edgeLabel LabelID) AdjList {
	return s.adjList(s.out, v, edgeLabel)
}

func (s *Snapshot) IncomingAdjList(v Vertex, edgeLabel LabelID) AdjList {
	return s.adjList(s.in, v, edgeLabel)
}

func (s *Snapshot) adjList(index [][]*csr, v Vertex, edgeLabel LabelID) AdjList {
	label := v.Label()
	if label < 0 || int(label) >= len(index) || int(edgeLabel) < 0 || int(edgeLabel) >= len(s.edgeLabels) {
		return AdjList{}
	}
	c := index[label][edgeLabel]
	if c == nil {
		return AdjList{}
	}
	off := v.Offset()
	if off >= int64(len(c.offsets)-1) {
		return AdjList{}
	}
	return AdjList{
		units: c.units,
		begin: c.offsets[off],
		end:   c.offsets[off+1],
	}
}

func (s *Snapshot) HasChild(v Vertex, edgeLabel LabelID) bool {
	return !s.OutgoingAdjList(v, edgeLabel).Empty()
}

func (s *Snapshot) HasParent(v Vertex, edgeLabel LabelID) bool {
	return !s.IncomingAdjList(v, edgeLabel).Empty()
}

func (s *Snapshot) LocalOutDegree(v Vertex, edgeLabel LabelID) int {
	return s.OutgoingAdjList(v, edgeLabel).Size()
}

func (s *Snapshot) LocalInDegree(v Vertex, edgeLabel LabelID) int {
	return s.IncomingAdjList(v, edgeLabel).Size()
}
