package table

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch = errors.New("column does not match schema")
	ErrRaggedColumns  = errors.New("columns have different lengths")
	ErrUnknownType    = errors.New("unknown column type")
	ErrBadValue       = errors.New("value cannot be stored in column")
)

type (
	// Table is an immutable columnar structure: a schema plus row-aligned columns.
	// The row count is fixed once the table is created.
	Table struct {
		schema  *Schema
		columns []Column
		numRows int
	}
)

func New(schema *Schema, columns []Column) (*Table, error) {
	if len(columns) != schema.NumFields() {
		return nil, fmt.Errorf("%w: %d columns for %d fields", ErrSchemaMismatch, len(columns), schema.NumFields())
	}
	numRows := 0
	for i, col := range columns {
		if col == nil || col.DataType() != schema.Field(i).Type {
			return nil, fmt.Errorf("%w: column %d (%s)", ErrSchemaMismatch, i, schema.Field(i).Name)
		}
		if i == 0 {
			numRows = col.Len()
		} else if col.Len() != numRows {
			return nil, fmt.Errorf("%w: column %s has %d rows, expected %d", ErrRaggedColumns, schema.Field(i).Name, col.Len(), numRows)
		}
	}
	return &Table{
		schema:  schema,
		columns: columns,
		numRows: numRows,
	}, nil
}

func (t *Table) Schema() *Schema {
	return t.schema
}

func (t *Table) NumColumns() int {
	return len(t.columns)
}

func (t *Table) NumRows() int {
	return t.numRows
}

// Column returns the i-th column. Callers must not modify it.
func (t *Table) Column(i int) Column {
	return t.columns[i]
}

// ColumnByName resolves name through the schema and returns its column
func (t *Table) ColumnByName(name string) (Column, bool) {
	idx, ok := FindIndexOfName(t.schema, name)
	if !ok {
		return nil, false
	}
	return t.columns[idx], true
}
