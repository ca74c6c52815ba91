package attribute

import (
	"fmt"

	"github.com/danthegoodman1/icegraph/gologger"
	"github.com/danthegoodman1/icegraph/table"
)

var logger = gologger.NewComponentLogger("attribute")

// DecodeRow decodes columns [startColumn, NumColumns) of one row. Integer columns
// become int fields, float and double columns become float fields (doubles are
// narrowed to float32), string columns become string fields. Any other column
// type is logged and left out of the result.
//
// row must be within the table; an out of range row is a programming error and
// panics.
func DecodeRow(t *table.Table, row, startColumn int) Value {
	if row < 0 || row >= t.NumRows() {
		panic(fmt.Sprintf("attribute: row %d out of range [0, %d)", row, t.NumRows()))
	}
	var v Value
	if n := t.NumColumns() - startColumn; n > 0 {
		v.Fields = make([]Field, 0, n)
	}
	for idx := startColumn; idx < t.NumColumns(); idx++ {
		switch col := t.Column(idx).(type) {
		case table.Int64Column:
			v.AddInt(col[row])
		case table.Int32Column:
			v.AddInt(int64(col[row]))
		case table.FloatColumn:
			v.AddFloat(col[row])
		case table.DoubleColumn:
			v.AddFloat(float32(col[row]))
		case table.StringColumn:
			v.AddString(col[row])
		default:
			logger.Warn().
				Str("column", t.Schema().Field(idx).Name).
				Str("type", t.Schema().Field(idx).Type.String()).
				Msg("unsupported attribute type, skipping column")
		}
	}
	return v
}

// DecodeTable decodes every row of t in row order. The result is freshly
// allocated and owned by the caller.
func DecodeTable(t *table.Table, startColumn int) []Value {
	values := make([]Value, t.NumRows())
	for i := range values {
		values[i] = DecodeRow(t, i, startColumn)
	}
	return values
}

// HasAttributes reports whether any column exists at or past startColumn
func HasAttributes(t *table.Table, startColumn int) bool {
	return t.NumColumns() > startColumn
}
