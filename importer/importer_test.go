package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/danthegoodman1/icegraph/datastore"
	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/metastore"
	"github.com/danthegoodman1/icegraph/storage"
	"github.com/danthegoodman1/icegraph/storage/columnar"
	"github.com/danthegoodman1/icegraph/store"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usersNDJSON = `{"id": 10, "weight": 0.5, "name": "ada", "profile": {"city": "nyc"}}
{"id": 11, "weight": 1.5, "name": "bob", "profile": {"city": "sf"}}

{"id": 12, "weight": 2.5, "name": "cy"}
`
	itemsNDJSON = `{"id": 100, "price": 9.99}
{"id": 101, "price": 20}
`
	buysNDJSON = `{"src": 10, "dst": 100, "weight": 0.25, "label": 1}
{"src": 10, "dst": 101, "weight": 0.75, "label": 0}
{"src": 12, "dst": 100, "weight": 1, "label": 1}
`
)

func TestReadNDJSON(t *testing.T) {
	tbl, err := ReadNDJSON(strings.NewReader(usersNDJSON), []string{"id"}, nil)
	require.NoError(t, err)

	require.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, table.Field{Name: "id", Type: table.Int64}, tbl.Schema().Field(0))
	assert.Equal(t, table.Int64Column{10, 11, 12}, tbl.Column(0))

	weight, ok := tbl.ColumnByName("weight")
	require.True(t, ok)
	assert.Equal(t, table.DoubleColumn{0.5, 1.5, 2.5}, weight)

	var city table.Column
	for i, f := range tbl.Schema().Fields() {
		if strings.HasPrefix(f.Name, "profile") && strings.HasSuffix(f.Name, "city") {
			city = tbl.Column(i)
		}
	}
	require.NotNil(t, city)
	// missing values take the zero value
	assert.Equal(t, table.StringColumn{"nyc", "sf", ""}, city)
}

func TestReadNDJSONIntColumns(t *testing.T) {
	tbl, err := ReadNDJSON(strings.NewReader(buysNDJSON), []string{"src", "dst"}, []string{"label"})
	require.NoError(t, err)
	assert.Equal(t, "src", tbl.Schema().Field(0).Name)
	assert.Equal(t, "dst", tbl.Schema().Field(1).Name)
	label, ok := tbl.ColumnByName("label")
	require.True(t, ok)
	assert.Equal(t, table.Int64Column{1, 0, 1}, label)
}

func TestReadNDJSONErrors(t *testing.T) {
	_, err := ReadNDJSON(strings.NewReader(`{"name": "no id"}`), []string{"id"}, nil)
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = ReadNDJSON(strings.NewReader(`[1, 2, 3]`), []string{"id"}, nil)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ReadNDJSON(strings.NewReader(`{"id": 1.5}`), []string{"id"}, nil)
	assert.ErrorIs(t, err, table.ErrBadValue)

	_, err = ReadNDJSON(strings.NewReader(`{"id": 1`), []string{"id"}, nil)
	assert.Error(t, err)
}

func newImporter(t *testing.T) *Importer {
	data, err := datastore.NewDiskDataStore(t.TempDir())
	require.NoError(t, err)
	return &Importer{Meta: metastore.NewMemoryMetaStore(), Data: data}
}

func shopRequest() Request {
	return Request{
		Name: "shop",
		Vertices: []VertexSource{
			{Label: "user", Reader: strings.NewReader(usersNDJSON)},
			{Label: "item", Reader: strings.NewReader(itemsNDJSON)},
		},
		Edges: []EdgeSource{
			{Label: "buys", Src: "user", Dst: "item", Reader: strings.NewReader(buysNDJSON)},
		},
		IntColumns: []string{"label"},
	}
}

func TestImportThenLoad(t *testing.T) {
	ctx := context.Background()
	im := newImporter(t)

	m, err := im.Import(ctx, shopRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	require.Len(t, m.VertexLabels, 2)
	assert.EqualValues(t, 3, m.VertexLabels[0].Rows)
	assert.EqualValues(t, 3, m.EdgeLabels[0].Rows)

	stored, err := im.Meta.GetGraph(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.EdgeLabels, stored.EdgeLabels)

	c := store.NewClient("test://", &store.Loader{Meta: im.Meta, Data: im.Data})
	f, err := c.GetFragment(ctx, fragment.ObjectID(m.ID))
	require.NoError(t, err)

	es, err := columnar.NewEdgeStorage(f, "buys", columnar.NewEdgeSideInfoCache())
	require.NoError(t, err)
	weights, ok := es.GetWeights()
	require.True(t, ok)
	assert.Equal(t, []float32{0.25, 0.75, 1}, weights)
	labels, ok := es.GetLabels()
	require.True(t, ok)
	assert.Equal(t, []int32{1, 0, 1}, labels)

	gs, err := columnar.NewGraphStorage(f, "buys", columnar.NewEdgeSideInfoCache())
	require.NoError(t, err)
	u10, ok := f.GetVertex(0, 10)
	require.True(t, ok)
	assert.Equal(t, 2, gs.GetOutDegree(storage.IdType(u10)))
	assert.Len(t, gs.GetAllSrcIds(), 2)
}

func TestImportRejectsDanglingEdges(t *testing.T) {
	ctx := context.Background()
	im := newImporter(t)

	req := shopRequest()
	req.Edges[0].Reader = strings.NewReader(`{"src": 10, "dst": 999}`)
	_, err := im.Import(ctx, req)
	assert.ErrorIs(t, err, fragment.ErrUnknownVertex)

	graphs, err := im.Meta.ListGraphs(ctx)
	require.NoError(t, err)
	assert.Empty(t, graphs)
}

func TestImportRejectsUnknownEdgeLabels(t *testing.T) {
	im := newImporter(t)
	req := shopRequest()
	req.Edges[0].Dst = "shop"
	_, err := im.Import(context.Background(), req)
	assert.ErrorIs(t, err, metastore.ErrBadManifest)
}

func TestSanitizeColumn(t *testing.T) {
	assert.Equal(t, "profile_city", sanitizeColumn("profile.city"))
	assert.Equal(t, "a_b_c", sanitizeColumn("a b-c"))
	assert.Equal(t, "plain", sanitizeColumn("plain"))
}
