package fragment_test

import (
	"encoding/binary"
	"testing"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/fragment/fragmenttest"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexEncoding(t *testing.T) {
	v := fragment.EncodeVertex(3, 12345)
	assert.Equal(t, fragment.LabelID(3), v.Label())
	assert.Equal(t, int64(12345), v.Offset())
	assert.Greater(t, int64(v), int64(0))

	r := fragment.VertexRange{Begin: fragment.EncodeVertex(1, 0), End: fragment.EncodeVertex(1, 4)}
	assert.Equal(t, int64(4), r.Size())
	assert.True(t, r.Contains(fragment.EncodeVertex(1, 3)))
	assert.False(t, r.Contains(fragment.EncodeVertex(2, 0)))
}

func TestSnapshotLabels(t *testing.T) {
	s := fragmenttest.NewSnapshot(t, "g1")
	assert.Equal(t, fragment.ObjectID("g1"), s.ID())
	assert.Equal(t, 2, s.VertexLabelNum())
	assert.Equal(t, 2, s.EdgeLabelNum())

	l, ok := s.VertexLabelID("item")
	require.True(t, ok)
	assert.Equal(t, fragmenttest.Item, l)
	assert.Equal(t, "follows", s.EdgeLabelName(fragmenttest.Follows))
	_, ok = s.EdgeLabelID("likes")
	assert.False(t, ok)

	assert.Equal(t, int64(len(fragmenttest.UserOids)), s.InnerVerticesNum(fragmenttest.User))
	for i, oid := range fragmenttest.ItemOids {
		v, ok := s.GetVertex(fragmenttest.Item, oid)
		require.True(t, ok)
		assert.Equal(t, int64(i), s.VertexOffset(v))
		assert.Equal(t, fragmenttest.Item, s.VertexLabel(v))
		assert.Equal(t, oid, s.GetOid(v))
	}
	_, ok = s.GetVertex(fragmenttest.Item, 10)
	assert.False(t, ok)
}

func TestAdjacencyMatchesEdgeTable(t *testing.T) {
	s := fragmenttest.NewSnapshot(t, "g1")

	total := 0
	r := s.InnerVertices(fragmenttest.User)
	for v := r.Begin; v < r.End; v++ {
		adj := s.OutgoingAdjList(v, fragmenttest.Buys)
		total += adj.Size()
		for i := 0; i < adj.Size(); i++ {
			row := fragmenttest.BuysRows[adj.Edge(i)]
			assert.Equal(t, row[0], s.GetOid(v))
			assert.Equal(t, row[1], s.GetOid(adj.Neighbor(i)))
		}
	}
	assert.Equal(t, len(fragmenttest.BuysRows), total)

	u10, _ := s.GetVertex(fragmenttest.User, 10)
	assert.Equal(t, 3, s.LocalOutDegree(u10, fragmenttest.Buys))
	assert.Equal(t, 0, s.LocalInDegree(u10, fragmenttest.Buys))
	assert.Equal(t, 2, s.LocalInDegree(u10, fragmenttest.Follows))
	assert.True(t, s.HasChild(u10, fragmenttest.Buys))
	assert.False(t, s.HasParent(u10, fragmenttest.Buys))

	u13, _ := s.GetVertex(fragmenttest.User, 13)
	assert.Equal(t, 0, s.LocalOutDegree(u13, fragmenttest.Buys))

	i100, _ := s.GetVertex(fragmenttest.Item, 100)
	in := s.IncomingAdjList(i100, fragmenttest.Buys)
	require.Equal(t, 2, in.Size())
	assert.Equal(t, int64(10), s.GetOid(in.Neighbor(0)))
	assert.Equal(t, int64(11), s.GetOid(in.Neighbor(1)))
	// items never own outgoing buys edges
	assert.True(t, s.OutgoingAdjList(i100, fragmenttest.Buys).Empty())
	// unknown edge label
	assert.True(t, s.OutgoingAdjList(u10, 7).Empty())
}

func TestViewsMatchRawUnits(t *testing.T) {
	s := fragmenttest.NewSnapshot(t, "g1")
	u10, _ := s.GetVertex(fragmenttest.User, 10)
	adj := s.OutgoingAdjList(u10, fragmenttest.Buys)

	nbrs := adj.NeighborView()
	edges := adj.EdgeView()
	require.Equal(t, adj.Size(), nbrs.Size())
	require.Equal(t, adj.Size(), edges.Size())

	raw := adj.Bytes()
	require.Len(t, raw, adj.Size()*fragment.NbrUnitSize)
	for i := 0; i < adj.Size(); i++ {
		unit := raw[i*fragment.NbrUnitSize : (i+1)*fragment.NbrUnitSize]
		assert.Equal(t, int64(binary.LittleEndian.Uint64(unit[0:8])), nbrs.At(i))
		assert.Equal(t, int64(binary.LittleEndian.Uint64(unit[8:16])), edges.At(i))
	}
	assert.Panics(t, func() { nbrs.At(adj.Size()) })
}

func TestMultiView(t *testing.T) {
	buf := make([]byte, 6*fragment.NbrUnitSize)
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint64(buf[i*16:], uint64(i))
		binary.LittleEndian.PutUint64(buf[i*16+8:], uint64(100+i))
	}
	first := fragment.NewStridedView(buf, 0, 2, 16, 8)
	empty := fragment.NewStridedView(buf, 0, 0, 16, 8)
	second := fragment.NewStridedView(buf, 3*16, 3, 16, 8)

	m := fragment.NewMultiView(first, empty, second)
	assert.Equal(t, 5, m.Size())
	assert.Equal(t, 2, m.NumSegments())
	assert.Equal(t, []int64{100, 101, 103, 104, 105}, m.AppendTo(nil))
	assert.Equal(t, int64(103), m.At(2))
	assert.Panics(t, func() { m.At(5) })

	assert.Equal(t, 0, fragment.NewMultiView().Size())
	assert.Panics(t, func() { fragment.NewStridedView(buf, 5*16, 2, 16, 8) })
}

func TestBuilderErrors(t *testing.T) {
	users := fragmenttest.UserTable(t)

	b := fragment.NewBuilder("bad")
	u := b.AddVertexLabel("user", users)
	b.AddEdgeLabel("x", fragmenttest.BuysTable(t), u, 4)
	_, err := b.Build()
	assert.ErrorIs(t, err, fragment.ErrBadLabel)

	b = fragment.NewBuilder("bad")
	u = b.AddVertexLabel("user", users)
	// buys points at item oids which are not users
	b.AddEdgeLabel("buys", fragmenttest.BuysTable(t), u, u)
	_, err = b.Build()
	assert.ErrorIs(t, err, fragment.ErrUnknownVertex)

	dup, err := table.New(
		table.NewSchema(table.Field{Name: "id", Type: table.Int64}),
		[]table.Column{table.Int64Column{1, 1}},
	)
	require.NoError(t, err)
	b = fragment.NewBuilder("bad")
	b.AddVertexLabel("dup", dup)
	_, err = b.Build()
	assert.ErrorIs(t, err, fragment.ErrDuplicateVertex)

	strIDs, err := table.New(
		table.NewSchema(table.Field{Name: "id", Type: table.String}),
		[]table.Column{table.StringColumn{"a"}},
	)
	require.NoError(t, err)
	b = fragment.NewBuilder("bad")
	b.AddVertexLabel("s", strIDs)
	_, err = b.Build()
	assert.ErrorIs(t, err, fragment.ErrBadTable)
}
