package fragment

import (
	"encoding/binary"
	"fmt"

	"github.com/danthegoodman1/icegraph/table"
)

type (
	vertexLabelInput struct {
		name  string
		table *table.Table
	}

	edgeLabelInput struct {
		name     string
		table    *table.Table
		src, dst LabelID
	}

	// Builder assembles a Snapshot from per-label tables. Vertex tables must hold
	// the original vertex id as an int64 in column 0. Edge tables must hold the
	// source and destination original ids as int64 in columns 0 and 1. Edges are
	// directed; the edge id is the row offset in the edge table.
	Builder struct {
		id           ObjectID
		vertexLabels []vertexLabelInput
		edgeLabels   []edgeLabelInput
	}
)

func NewBuilder(id ObjectID) *Builder {
	return &Builder{id: id}
}

func (b *Builder) AddVertexLabel(name string, t *table.Table) LabelID {
	b.vertexLabels = append(b.vertexLabels, vertexLabelInput{name: name, table: t})
	return LabelID(len(b.vertexLabels) - 1)
}

func (b *Builder) AddEdgeLabel(name string, t *table.Table, src, dst LabelID) LabelID {
	b.edgeLabels = append(b.edgeLabels, edgeLabelInput{name: name, table: t, src: src, dst: dst})
	return LabelID(len(b.edgeLabels) - 1)
}

func (b *Builder) Build() (*Snapshot, error) {
	if len(b.vertexLabels) >= MaxLabels {
		return nil, fmt.Errorf("%w: %d vertex labels", ErrTooManyLabels, len(b.vertexLabels))
	}
	s := &Snapshot{
		id:           b.id,
		vertexLabels: make([]string, len(b.vertexLabels)),
		edgeLabels:   make([]string, len(b.edgeLabels)),
		vertexTables: make([]*table.Table, len(b.vertexLabels)),
		edgeTables:   make([]*table.Table, len(b.edgeLabels)),
		oids:         make([]table.Int64Column, len(b.vertexLabels)),
		oidIndex:     make([]map[int64]int64, len(b.vertexLabels)),
		out:          make([][]*csr, len(b.vertexLabels)),
		in:           make([][]*csr, len(b.vertexLabels)),
	}

	for l, vl := range b.vertexLabels {
		oids, err := keyColumn(vl.table, 0, vl.name)
		if err != nil {
			return nil, err
		}
		if int64(len(oids)) > offsetMask {
			return nil, fmt.Errorf("%w: label %s has %d vertices", ErrBadTable, vl.name, len(oids))
		}
		index := make(map[int64]int64, len(oids))
		for offset, oid := range oids {
			if _, exists := index[oid]; exists {
				return nil, fmt.Errorf("%w: %d in label %s", ErrDuplicateVertex, oid, vl.name)
			}
			index[oid] = int64(offset)
		}
		s.vertexLabels[l] = vl.name
		s.vertexTables[l] = vl.table
		s.oids[l] = oids
		s.oidIndex[l] = index
		s.out[l] = make([]*csr, len(b.edgeLabels))
		s.in[l] = make([]*csr, len(b.edgeLabels))
	}

	for e, el := range b.edgeLabels {
		if !s.validVertexLabel(el.src) || !s.validVertexLabel(el.dst) {
			return nil, fmt.Errorf("%w: edge label %s connects %d -> %d", ErrBadLabel, el.name, el.src, el.dst)
		}
		srcOids, err := keyColumn(el.table, 0, el.name)
		if err != nil {
			return nil, err
		}
		dstOids, err := keyColumn(el.table, 1, el.name)
		if err != nil {
			return nil, err
		}

		srcOffsets := make([]int64, len(srcOids))
		dstOffsets := make([]int64, len(dstOids))
		for row := range srcOids {
			var ok bool
			if srcOffsets[row], ok = s.oidIndex[el.src][srcOids[row]]; !ok {
				return nil, fmt.Errorf("%w: source %d of edge %d in label %s", ErrUnknownVertex, srcOids[row], row, el.name)
			}
			if dstOffsets[row], ok = s.oidIndex[el.dst][dstOids[row]]; !ok {
				return nil, fmt.Errorf("%w: destination %d of edge %d in label %s", ErrUnknownVertex, dstOids[row], row, el.name)
			}
		}

		s.edgeLabels[e] = el.name
		s.edgeTables[e] = el.table
		s.out[el.src][e] = packCSR(len(s.oids[el.src]), srcOffsets, dstOffsets, el.dst)
		s.in[el.dst][e] = packCSR(len(s.oids[el.dst]), dstOffsets, srcOffsets, el.src)
	}

	return s, nil
}

func (s *Snapshot) validVertexLabel(l LabelID) bool {
	return l >= 0 && int(l) < len(s.vertexLabels)
}

func keyColumn(t *table.Table, idx int, label string) (table.Int64Column, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: label %s has no table", ErrBadTable, label)
	}
	if t.NumColumns() <= idx {
		return nil, fmt.Errorf("%w: label %s needs an id column at %d", ErrBadTable, label, idx)
	}
	col, ok := t.Column(idx).(table.Int64Column)
	if !ok {
		return nil, fmt.Errorf("%w: label %s column %s must be int64, got %s", ErrBadTable, label,
			t.Schema().Field(idx).Name, t.Column(idx).DataType())
	}
	return col, nil
}

// packCSR groups edge rows by owner offset, preserving row order within each
// owner, and writes one neighbor unit per row.
func packCSR(numVertices int, owners, neighbors []int64, neighborLabel LabelID) *csr {
	c := &csr{
		offsets: make([]int, numVertices+1),
		units:   make([]byte, len(owners)*NbrUnitSize),
	}
	for _, o := range owners {
		c.offsets[o+1]++
	}
	for i := 1; i <= numVertices; i++ {
		c.offsets[i] += c.offsets[i-1]
	}
	cursor := make([]int, numVertices)
	copy(cursor, c.offsets[:numVertices])
	for row, o := range owners {
		p := cursor[o] * NbrUnitSize
		cursor[o]++
		nbr := EncodeVertex(neighborLabel, neighbors[row])
		binary.LittleEndian.PutUint64(c.units[p+NbrVidOffset:], uint64(nbr))
		binary.LittleEndian.PutUint64(c.units[p+NbrEidOffset:], uint64(row))
	}
	return c
}
