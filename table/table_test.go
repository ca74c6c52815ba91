package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edgeSchema() *Schema {
	return NewSchema(
		Field{Name: "src", Type: Int64},
		Field{Name: "dst", Type: Int64},
		Field{Name: "weight", Type: Double},
		Field{Name: "name", Type: String},
	)
}

func TestFindIndexOfName(t *testing.T) {
	s := edgeSchema()

	idx, ok := FindIndexOfName(s, "weight")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = FindIndexOfName(s, "Weight")
	assert.False(t, ok, "lookup is case sensitive")

	idx, ok = FindIndexOfName(s, "label")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestFindIndexOfNameDuplicateFirstWins(t *testing.T) {
	s := NewSchema(
		Field{Name: "a", Type: Int64},
		Field{Name: "weight", Type: Float},
		Field{Name: "weight", Type: Double},
	)
	idx, ok := FindIndexOfName(s, "weight")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestNewValidates(t *testing.T) {
	s := NewSchema(Field{Name: "a", Type: Int64}, Field{Name: "b", Type: String})

	_, err := New(s, []Column{Int64Column{1}})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = New(s, []Column{Int64Column{1}, DoubleColumn{1}})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = New(s, []Column{Int64Column{1, 2}, StringColumn{"x"}})
	assert.ErrorIs(t, err, ErrRaggedColumns)

	tbl, err := New(s, []Column{Int64Column{1, 2}, StringColumn{"x", "y"}})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumColumns())
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(edgeSchema())
	require.NoError(t, b.AppendRow(int64(1), 2, 0.5, "a"))
	// JSON style numbers
	require.NoError(t, b.AppendRow(3.0, float64(4), float32(1.5), nil))

	err := b.AppendRow(3.5, 4, 1.0, "bad")
	assert.ErrorIs(t, err, ErrBadValue)
	err = b.AppendRow(1, 2, "not a float", "x")
	assert.ErrorIs(t, err, ErrBadValue)
	assert.ErrorIs(t, b.AppendRow(1, 2), ErrSchemaMismatch)

	tbl, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows(), "failed rows must not be appended")

	assert.Equal(t, Int64Column{1, 3}, tbl.Column(0))
	assert.Equal(t, Int64Column{2, 4}, tbl.Column(1))
	assert.Equal(t, DoubleColumn{0.5, 1.5}, tbl.Column(2))
	assert.Equal(t, StringColumn{"a", ""}, tbl.Column(3))

	col, ok := tbl.ColumnByName("weight")
	require.True(t, ok)
	v, ok := Float64At(col, 1)
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = Float64At(tbl.Column(3), 0)
	assert.False(t, ok)

	empty, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumRows())
}

func TestBuilderPointers(t *testing.T) {
	b := NewBuilder(NewSchema(Field{Name: "i", Type: Int32}, Field{Name: "ok", Type: Bool}))
	one := int32(1)
	yes := true
	require.NoError(t, b.AppendRow(&one, &yes))
	require.NoError(t, b.AppendRow((*int32)(nil), (*bool)(nil)))
	tbl, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, Int32Column{1, 0}, tbl.Column(0))
	assert.Equal(t, BoolColumn{true, false}, tbl.Column(1))
}

func TestParseDataType(t *testing.T) {
	for _, dt := range []DataType{Int32, Int64, Float, Double, String, Bool} {
		parsed, err := ParseDataType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, parsed)
	}
	_, err := ParseDataType("decimal")
	assert.ErrorIs(t, err, ErrUnknownType)
}
