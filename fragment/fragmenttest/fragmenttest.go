// Package fragmenttest builds small, fully known snapshots for tests.
package fragmenttest

import (
	"testing"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/stretchr/testify/require"
)

const (
	User fragment.LabelID = 0
	Item fragment.LabelID = 1

	Buys    fragment.LabelID = 0
	Follows fragment.LabelID = 1
)

var (
	UserOids = []int64{10, 11, 12, 13}
	ItemOids = []int64{100, 101, 102}

	// BuysRows is (src oid, dst oid, weight, label) in table order
	BuysRows = [][]any{
		{int64(10), int64(100), 0.1, int64(1)},
		{int64(10), int64(101), 0.2, int64(0)},
		{int64(11), int64(100), 0.3, int64(1)},
		{int64(12), int64(102), 0.4, int64(0)},
		{int64(10), int64(102), 0.5, int64(1)},
	}
	FollowsRows = [][]any{
		{int64(10), int64(11)},
		{int64(11), int64(12)},
		{int64(12), int64(10)},
		{int64(13), int64(10)},
	}
)

func UserTable(t testing.TB) *table.Table {
	b := table.NewBuilder(table.NewSchema(
		table.Field{Name: "id", Type: table.Int64},
		table.Field{Name: "weight", Type: table.Double},
		table.Field{Name: "label", Type: table.Int64},
		table.Field{Name: "name", Type: table.String},
		table.Field{Name: "active", Type: table.Bool},
	))
	names := []string{"ada", "bob", "cy", "dee"}
	for i, oid := range UserOids {
		require.NoError(t, b.AppendRow(oid, float64(i)+0.5, int64(i%2), names[i], i%2 == 0))
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func ItemTable(t testing.TB) *table.Table {
	b := table.NewBuilder(table.NewSchema(
		table.Field{Name: "id", Type: table.Int64},
		table.Field{Name: "price", Type: table.Float},
	))
	for i, oid := range ItemOids {
		require.NoError(t, b.AppendRow(oid, float32(i)*10))
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func BuysTable(t testing.TB) *table.Table {
	b := table.NewBuilder(table.NewSchema(
		table.Field{Name: "src", Type: table.Int64},
		table.Field{Name: "dst", Type: table.Int64},
		table.Field{Name: "weight", Type: table.Double},
		table.Field{Name: "label", Type: table.Int64},
	))
	for _, row := range BuysRows {
		require.NoError(t, b.AppendRow(row...))
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func FollowsTable(t testing.TB) *table.Table {
	b := table.NewBuilder(table.NewSchema(
		table.Field{Name: "src", Type: table.Int64},
		table.Field{Name: "dst", Type: table.Int64},
	))
	for _, row := range FollowsRows {
		require.NoError(t, b.AppendRow(row...))
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

// NewSnapshot builds users and items connected by "buys" (user -> item, with
// weight and label columns) and "follows" (user -> user, keys only).
func NewSnapshot(t testing.TB, id fragment.ObjectID) *fragment.Snapshot {
	b := fragment.NewBuilder(id)
	user := b.AddVertexLabel("user", UserTable(t))
	item := b.AddVertexLabel("item", ItemTable(t))
	b.AddEdgeLabel("buys", BuysTable(t), user, item)
	b.AddEdgeLabel("follows", FollowsTable(t), user, user)
	s, err := b.Build()
	require.NoError(t, err)
	return s
}
