package datastore

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/danthegoodman1/icegraph/parquet_accumulator"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const parallelism = 4

// EncodeTable writes t to w as a single parquet file with REQUIRED columns
func EncodeTable(w io.Writer, t *table.Table) error {
	pa, err := parquet_accumulator.FromTableSchema(t.Schema())
	if err != nil {
		return fmt.Errorf("error in FromTableSchema: %w", err)
	}
	schemaStr, err := pa.GetSchemaString()
	if err != nil {
		return fmt.Errorf("error in GetSchemaString: %w", err)
	}
	pw, err := writer.NewJSONWriterFromWriter(schemaStr, w, parallelism)
	if err != nil {
		return fmt.Errorf("error in writer.NewJSONWriterFromWriter: %w", err)
	}

	fields := t.Schema().Fields()
	row := make(map[string]any, len(fields))
	for r := 0; r < t.NumRows(); r++ {
		for c, f := range fields {
			row[f.Name] = t.Column(c).Any(r)
		}
		rowBytes, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("error in json.Marshal of row %d: %w", r, err)
		}
		if err := pw.Write(string(rowBytes)); err != nil {
			return fmt.Errorf("error in pw.Write for row %d: %w", r, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("error in pw.WriteStop: %w", err)
	}
	return nil
}

// DecodeTable reads every row of a flat parquet file into a table. Column
// names and types come from the file footer.
func DecodeTable(pf source.ParquetFile) (*table.Table, error) {
	pr, err := reader.NewParquetReader(pf, nil, parallelism)
	if err != nil {
		return nil, fmt.Errorf("error in reader.NewParquetReader: %w", err)
	}
	defer pr.ReadStop()

	var fields []table.Field
	for i, se := range pr.Footer.Schema[1:] {
		// the reader renames footer elements to exported Go names, the
		// external name is the one that was written
		name := pr.SchemaHandler.GetExName(i + 1)
		if se.NumChildren != nil && *se.NumChildren > 0 {
			return nil, fmt.Errorf("%w: nested column %s", table.ErrUnknownType, name)
		}
		t, err := fromParquetType(se.GetType())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		fields = append(fields, table.Field{Name: name, Type: t})
	}
	b := table.NewBuilder(table.NewSchema(fields...))

	numRows := int(pr.GetNumRows())
	if numRows > 0 {
		rows, err := pr.ReadByNumber(numRows)
		if err != nil {
			return nil, fmt.Errorf("error in pr.ReadByNumber: %w", err)
		}
		values := make([]any, len(fields))
		for i, row := range rows {
			// rows are dynamic structs with fields in schema order
			v := reflect.Indirect(reflect.ValueOf(row))
			if v.Kind() != reflect.Struct || v.NumField() != len(fields) {
				return nil, fmt.Errorf("%w: row %d has unexpected shape %s", table.ErrSchemaMismatch, i, v.Type())
			}
			for c := range values {
				values[c] = v.Field(c).Interface()
			}
			if err := b.AppendRow(values...); err != nil {
				return nil, fmt.Errorf("error appending row %d: %w", i, err)
			}
		}
	}
	return b.Build()
}

func fromParquetType(t parquet.Type) (table.DataType, error) {
	switch t {
	case parquet.Type_INT32:
		return table.Int32, nil
	case parquet.Type_INT64:
		return table.Int64, nil
	case parquet.Type_FLOAT:
		return table.Float, nil
	case parquet.Type_DOUBLE:
		return table.Double, nil
	case parquet.Type_BYTE_ARRAY:
		return table.String, nil
	case parquet.Type_BOOLEAN:
		return table.Bool, nil
	}
	return table.Unknown, fmt.Errorf("%w: parquet %s", table.ErrUnknownType, t)
}
