package table

type (
	// Column is one row-aligned column of a table.
	Column interface {
		DataType() DataType
		Len() int
		// Any returns the boxed value at row i
		Any(i int) any
	}

	Int32Column  []int32
	Int64Column  []int64
	FloatColumn  []float32
	DoubleColumn []float64
	StringColumn []string
	BoolColumn   []bool
)

func (c Int32Column) DataType() DataType  { return Int32 }
func (c Int64Column) DataType() DataType  { return Int64 }
func (c FloatColumn) DataType() DataType  { return Float }
func (c DoubleColumn) DataType() DataType { return Double }
func (c StringColumn) DataType() DataType { return String }
func (c BoolColumn) DataType() DataType   { return Bool }

func (c Int32Column) Len() int  { return len(c) }
func (c Int64Column) Len() int  { return len(c) }
func (c FloatColumn) Len() int  { return len(c) }
func (c DoubleColumn) Len() int { return len(c) }
func (c StringColumn) Len() int { return len(c) }
func (c BoolColumn) Len() int   { return len(c) }

func (c Int32Column) Any(i int) any  { return c[i] }
func (c Int64Column) Any(i int) any  { return c[i] }
func (c FloatColumn) Any(i int) any  { return c[i] }
func (c DoubleColumn) Any(i int) any { return c[i] }
func (c StringColumn) Any(i int) any { return c[i] }
func (c BoolColumn) Any(i int) any   { return c[i] }

// NewColumn allocates an empty column of the given type with capacity n
func NewColumn(t DataType, n int) Column {
	switch t {
	case Int32:
		return make(Int32Column, 0, n)
	case Int64:
		return make(Int64Column, 0, n)
	case Float:
		return make(FloatColumn, 0, n)
	case Double:
		return make(DoubleColumn, 0, n)
	case String:
		return make(StringColumn, 0, n)
	case Bool:
		return make(BoolColumn, 0, n)
	default:
		return nil
	}
}

// Float64At reads a numeric column value widened to float64. ok is false for
// non-numeric columns.
func Float64At(c Column, i int) (v float64, ok bool) {
	switch col := c.(type) {
	case Int32Column:
		return float64(col[i]), true
	case Int64Column:
		return float64(col[i]), true
	case FloatColumn:
		return float64(col[i]), true
	case DoubleColumn:
		return col[i], true
	}
	return 0, false
}

// Int64At reads a numeric column value converted to int64, truncating floats.
func Int64At(c Column, i int) (v int64, ok bool) {
	switch col := c.(type) {
	case Int32Column:
		return int64(col[i]), true
	case Int64Column:
		return col[i], true
	case FloatColumn:
		return int64(col[i]), true
	case DoubleColumn:
		return int64(col[i]), true
	}
	return 0, false
}
