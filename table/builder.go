package table

import (
	"fmt"
	"math"
)

// Builder accumulates rows and produces a Table. It is not safe for concurrent use.
type Builder struct {
	schema  *Schema
	columns []Column
}

func NewBuilder(schema *Schema) *Builder {
	b := &Builder{schema: schema}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.columns = make([]Column, b.schema.NumFields())
	for i, f := range b.schema.fields {
		b.columns[i] = NewColumn(f.Type, 0)
	}
}

// AppendRow appends one row, in schema order. Values are converted to the
// column type; nil and nil pointers become the zero value.
func (b *Builder) AppendRow(values ...any) error {
	if len(values) != len(b.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrSchemaMismatch, len(values), len(b.columns))
	}
	// convert everything first so a bad value never leaves a ragged row behind
	converted := make([]any, len(values))
	for i, v := range values {
		c, err := convert(b.schema.fields[i].Type, deref(v))
		if err != nil {
			return fmt.Errorf("column %s: %w", b.schema.fields[i].Name, err)
		}
		converted[i] = c
	}
	for i, v := range converted {
		switch col := b.columns[i].(type) {
		case Int32Column:
			b.columns[i] = append(col, v.(int32))
		case Int64Column:
			b.columns[i] = append(col, v.(int64))
		case FloatColumn:
			b.columns[i] = append(col, v.(float32))
		case DoubleColumn:
			b.columns[i] = append(col, v.(float64))
		case StringColumn:
			b.columns[i] = append(col, v.(string))
		case BoolColumn:
			b.columns[i] = append(col, v.(bool))
		}
	}
	return nil
}

// Build returns the table and resets the builder
func (b *Builder) Build() (*Table, error) {
	t, err := New(b.schema, b.columns)
	if err != nil {
		return nil, err
	}
	b.reset()
	return t, nil
}

func deref(v any) any {
	switch p := v.(type) {
	case *int32:
		if p == nil {
			return nil
		}
		return *p
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *float32:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *bool:
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}

func convert(t DataType, v any) (any, error) {
	switch t {
	case Int32:
		i, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		if i > math.MaxInt32 || i < math.MinInt32 {
			return nil, fmt.Errorf("%w: %d overflows int32", ErrBadValue, i)
		}
		return int32(i), nil
	case Int64:
		return toInt64(v)
	case Float:
		f, err := toFloat64(v)
		return float32(f), err
	case Double:
		return toFloat64(v)
	case String:
		switch s := v.(type) {
		case nil:
			return "", nil
		case string:
			return s, nil
		}
	case Bool:
		switch s := v.(type) {
		case nil:
			return false, nil
		case bool:
			return s, nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	return nil, fmt.Errorf("%w: %T into %s", ErrBadValue, v, t)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float32:
		if float32(int64(n)) != n {
			return 0, fmt.Errorf("%w: %v is not integral", ErrBadValue, n)
		}
		return int64(n), nil
	case float64:
		// JSON numbers arrive as float64
		if float64(int64(n)) != n {
			return 0, fmt.Errorf("%w: %v is not integral", ErrBadValue, n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("%w: %T into int", ErrBadValue, v)
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("%w: %T into float", ErrBadValue, v)
}
