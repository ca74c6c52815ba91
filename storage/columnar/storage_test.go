package columnar

import (
	"testing"

	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/fragment/fragmenttest"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(offset int64) storage.IdType {
	return storage.IdType(fragment.EncodeVertex(fragmenttest.User, offset))
}

func item(offset int64) storage.IdType {
	return storage.IdType(fragment.EncodeVertex(fragmenttest.Item, offset))
}

func TestNodeStorage(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	ns, err := NewNodeStorage(snap, "user", NewNodeSideInfoCache())
	require.NoError(t, err)

	require.EqualValues(t, 4, ns.Size())
	ids := ns.GetIds()
	assert.Equal(t, []storage.IdType{user(0), user(1), user(2), user(3)}, ids)
	assert.Len(t, ids, int(ns.Size()))

	assert.Equal(t, float32(2.5), ns.GetWeight(user(2)))
	assert.Equal(t, int32(1), ns.GetLabel(user(3)))

	weights, ok := ns.GetWeights()
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 1.5, 2.5, 3.5}, weights)
	labels, ok := ns.GetLabels()
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 0, 1}, labels)

	// id, weight, label and name decode; the bool column is dropped
	attr := ns.GetAttribute(user(1))
	require.Equal(t, 4, attr.Len())
	assert.Equal(t, []int64{11, 1}, attr.Ints())
	assert.Equal(t, []float32{1.5}, attr.Floats())
	assert.Equal(t, []string{"bob"}, attr.Strings())

	attrs, ok := ns.GetAttributes()
	require.True(t, ok)
	require.Len(t, attrs, 4)
	assert.Equal(t, attr, attrs[1])

	assert.ErrorIs(t, ns.Add(&storage.NodeValue{ID: 99}), storage.ErrNotSupported)
}

func TestNodeStorageMissingColumns(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	ns, err := NewNodeStorage(snap, "item", NewNodeSideInfoCache())
	require.NoError(t, err)

	assert.EqualValues(t, 3, ns.Size())
	assert.Equal(t, float32(0), ns.GetWeight(item(1)))
	assert.Equal(t, int32(0), ns.GetLabel(item(1)))

	weights, ok := ns.GetWeights()
	assert.False(t, ok)
	assert.Nil(t, weights)
	_, ok = ns.GetLabels()
	assert.False(t, ok)

	// price is the only non-id column and still decodes
	attrs, ok := ns.GetAttributes()
	require.True(t, ok)
	assert.Equal(t, []float32{20}, attrs[2].Floats())
}

func TestNodeStorageReadsOwnLabel(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	users, err := NewNodeStorage(snap, "user", NewNodeSideInfoCache())
	require.NoError(t, err)

	// an item id resolves through the item table, which has no weight column
	assert.Equal(t, float32(0), users.GetWeight(item(0)))
	assert.Equal(t, []int64{101}, users.GetAttribute(item(1)).Ints())
}

func TestEdgeStorage(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	es, err := NewEdgeStorage(snap, "buys", NewEdgeSideInfoCache())
	require.NoError(t, err)

	require.EqualValues(t, 5, es.Size())
	srcs, dsts := es.GetSrcIds(), es.GetDstIds()
	assert.Equal(t, []storage.IdType{user(0), user(0), user(0), user(1), user(2)}, srcs)
	assert.Equal(t, []storage.IdType{item(0), item(1), item(2), item(0), item(2)}, dsts)

	weights, ok := es.GetWeights()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, weights, 1e-6)
	labels, ok := es.GetLabels()
	require.True(t, ok)
	assert.Equal(t, []int32{1, 0, 1, 0, 1}, labels)

	attrs, ok := es.GetAttributes()
	require.True(t, ok)
	require.Len(t, attrs, 5)
	for i, a := range attrs {
		require.Equal(t, 2, a.Len())
		assert.Equal(t, attribute.KindFloat, a.Fields[0].Kind)
		assert.Equal(t, int64(labels[i]), a.Fields[1].Int)
	}
}

func TestEdgeStorageKeysOnly(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	es, err := NewEdgeStorage(snap, "follows", NewEdgeSideInfoCache())
	require.NoError(t, err)

	srcs, dsts := es.GetSrcIds(), es.GetDstIds()
	require.Len(t, srcs, int(es.Size()))
	require.Len(t, dsts, int(es.Size()))
	assert.Equal(t, []storage.IdType{user(0), user(1), user(2), user(3)}, srcs)
	assert.Equal(t, []storage.IdType{user(1), user(2), user(0), user(0)}, dsts)

	weights, ok := es.GetWeights()
	assert.False(t, ok)
	assert.Nil(t, weights)
	_, ok = es.GetLabels()
	assert.False(t, ok)
	_, ok = es.GetAttributes()
	assert.False(t, ok)
}

func TestEdgeStorageUnsupported(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	es, err := NewEdgeStorage(snap, "buys", NewEdgeSideInfoCache())
	require.NoError(t, err)

	_, err = es.GetSrcId(0)
	assert.ErrorIs(t, err, storage.ErrNotImplemented)
	_, err = es.GetDstId(0)
	assert.ErrorIs(t, err, storage.ErrNotImplemented)
	_, err = es.GetWeight(0)
	assert.ErrorIs(t, err, storage.ErrNotImplemented)
	_, err = es.GetLabel(0)
	assert.ErrorIs(t, err, storage.ErrNotImplemented)
	_, err = es.GetAttribute(0)
	assert.ErrorIs(t, err, storage.ErrNotImplemented)
	assert.NotErrorIs(t, err, storage.ErrNotSupported)

	_, err = es.Add(&storage.EdgeValue{SrcID: user(0), DstID: item(0)})
	assert.ErrorIs(t, err, storage.ErrNotSupported)
}

func TestLabelResolution(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")

	byID, err := NewEdgeStorage(snap, "1", NewEdgeSideInfoCache())
	require.NoError(t, err)
	assert.Equal(t, fragmenttest.Follows, byID.label)

	for _, bad := range []string{"likes", "2", "-1", ""} {
		_, err = NewEdgeStorage(snap, bad, NewEdgeSideInfoCache())
		assert.ErrorIs(t, err, storage.ErrUnknownLabel, bad)
		_, err = NewNodeStorage(snap, bad, NewNodeSideInfoCache())
		assert.ErrorIs(t, err, storage.ErrUnknownLabel, bad)
		_, err = NewTopoStorage(snap, bad)
		assert.ErrorIs(t, err, storage.ErrUnknownLabel, bad)
	}
}

func TestTopoViewsMatchRawScan(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	for _, label := range []fragment.LabelID{fragmenttest.Buys, fragmenttest.Follows} {
		ts := &TopoStorage{frag: snap, label: label}
		for vl := 0; vl < snap.VertexLabelNum(); vl++ {
			vr := snap.InnerVertices(fragment.LabelID(vl))
			for v := vr.Begin; v < vr.End; v++ {
				raw := snap.OutgoingAdjList(v, label)
				nbrs := ts.GetNeighbors(storage.IdType(v))
				edges := ts.GetOutEdges(storage.IdType(v))
				require.Equal(t, raw.Size(), nbrs.Size())
				require.Equal(t, raw.Size(), edges.Size())
				require.Equal(t, raw.Size(), ts.GetOutDegree(storage.IdType(v)))
				for i := 0; i < raw.Size(); i++ {
					assert.Equal(t, int64(raw.Neighbor(i)), nbrs.At(i))
					assert.Equal(t, int64(raw.Edge(i)), edges.At(i))
				}

				rawIn := snap.IncomingAdjList(v, label)
				inNbrs := ts.GetInNeighbors(storage.IdType(v))
				inEdges := ts.GetInEdges(storage.IdType(v))
				require.Equal(t, rawIn.Size(), inNbrs.Size())
				require.Equal(t, rawIn.Size(), inEdges.Size())
				for i := 0; i < rawIn.Size(); i++ {
					assert.Equal(t, int64(rawIn.Neighbor(i)), inNbrs.At(i))
					assert.Equal(t, int64(rawIn.Edge(i)), inEdges.At(i))
				}
			}
		}
	}
}

func TestTopoStorage(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	ts, err := NewTopoStorage(snap, "buys")
	require.NoError(t, err)

	assert.Equal(t, []storage.IdType{item(0), item(1), item(2)}, storage.ToSlice(ts.GetNeighbors(user(0))))
	assert.Equal(t, []storage.IdType{0, 1, 4}, storage.ToSlice(ts.GetOutEdges(user(0))))
	assert.Equal(t, 0, ts.GetNeighbors(user(3)).Size())
	assert.Equal(t, 0, ts.GetOutDegree(user(3)))
	assert.Equal(t, 2, ts.GetInDegree(item(2)))
	assert.Equal(t, []storage.IdType{user(2), user(0)}, storage.ToSlice(ts.GetInNeighbors(item(2))))
	assert.Equal(t, []storage.IdType{3, 4}, storage.ToSlice(ts.GetInEdges(item(2))))

	assert.ErrorIs(t, ts.Add(0, &storage.EdgeValue{}), storage.ErrNotSupported)
}

func TestGraphStorage(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	gs, err := NewGraphStorage(snap, "buys", NewEdgeSideInfoCache())
	require.NoError(t, err)

	assert.EqualValues(t, 5, gs.GetEdgeCount())
	assert.Equal(t, []storage.IdType{user(0), user(1), user(2)}, gs.GetAllSrcIds())
	assert.Equal(t, []int{3, 1, 1}, gs.GetAllOutDegrees())
	assert.Equal(t, []storage.IdType{item(0), item(1), item(2)}, gs.GetAllDstIds())
	assert.Equal(t, []int{2, 1, 2}, gs.GetAllInDegrees())
	assert.Same(t, gs.GetSideInfo(), gs.GetEdges().GetSideInfo())

	// the edge storage keeps duplicates, the graph storage does not
	assert.Len(t, gs.GetEdges().GetSrcIds(), 5)

	follows, err := NewGraphStorage(snap, "follows", NewEdgeSideInfoCache())
	require.NoError(t, err)
	assert.Equal(t, []storage.IdType{user(0), user(1), user(2)}, follows.GetAllDstIds())
	assert.Equal(t, []int{2, 1, 1}, follows.GetAllInDegrees())
}

func TestDegreeSums(t *testing.T) {
	snap := fragmenttest.NewSnapshot(t, "g1")
	for _, name := range []string{"buys", "follows"} {
		gs, err := NewGraphStorage(snap, name, NewEdgeSideInfoCache())
		require.NoError(t, err)

		out, both := 0, 0
		for vl := 0; vl < snap.VertexLabelNum(); vl++ {
			vr := snap.InnerVertices(fragment.LabelID(vl))
			for v := vr.Begin; v < vr.End; v++ {
				out += gs.GetOutDegree(storage.IdType(v))
				both += gs.GetOutDegree(storage.IdType(v)) + gs.GetInDegree(storage.IdType(v))
			}
		}
		assert.EqualValues(t, gs.GetEdgeCount(), out, name)
		assert.EqualValues(t, 2*gs.GetEdgeCount(), both, name)

		sum := 0
		for _, d := range gs.GetAllOutDegrees() {
			sum += d
		}
		assert.EqualValues(t, gs.GetEdgeCount(), sum, name)
	}
}
