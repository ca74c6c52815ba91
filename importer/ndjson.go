package importer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/danthegoodman1/gojsonutils"
	"github.com/danthegoodman1/icegraph/parquet_accumulator"
	"github.com/danthegoodman1/icegraph/table"
)

const maxLineBytes = 16 * 1024 * 1024

var (
	ErrNotFlatMap = errors.New("not a flat map")
	ErrNotObject  = errors.New("line is not a JSON object")
	ErrMissingKey = errors.New("missing key column")
)

// sanitizeColumn maps a flattened JSON path onto a parquet safe column name
func sanitizeColumn(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// ReadNDJSON reads one JSON object per line into a table. Nested objects are
// flattened into their own columns. keyColumns must be present on every row,
// are stored as int64 and lead the schema in the given order; intColumns are
// stored as int64 too. Every other number is a double.
func ReadNDJSON(r io.Reader, keyColumns, intColumns []string) (*table.Table, error) {
	acc := parquet_accumulator.NewParquetAccumulator(append(append([]string{}, keyColumns...), intColumns...)...)
	var rows []map[string]any

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var raw any
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("error in json.Unmarshal on line %d: %w", line, err)
		}
		jsonMap, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: line %d", ErrNotObject, line)
		}
		flat, err := gojsonutils.Flatten(jsonMap, nil)
		if err != nil {
			return nil, fmt.Errorf("error flattening line %d: %w", line, err)
		}
		flatMap, ok := flat.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: line %d", ErrNotFlatMap, line)
		}
		row := make(map[string]any, len(flatMap))
		for k, v := range flatMap {
			row[sanitizeColumn(k)] = v
		}
		for _, key := range keyColumns {
			if v, ok := row[key]; !ok || v == nil {
				return nil, fmt.Errorf("%w: %s on line %d", ErrMissingKey, key, line)
			}
		}
		rows = append(rows, row)
		acc.WriteRow(row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning NDJSON: %w", err)
	}

	fields := make([]table.Field, 0, len(keyColumns))
	for _, key := range keyColumns {
		fields = append(fields, table.Field{Name: key, Type: table.Int64})
	}
	for _, f := range acc.TableSchema().Fields() {
		if !isKey(f.Name, keyColumns) {
			fields = append(fields, f)
		}
	}

	b := table.NewBuilder(table.NewSchema(fields...))
	values := make([]any, len(fields))
	for i, row := range rows {
		for c, f := range fields {
			values[c] = row[f.Name]
		}
		if err := b.AppendRow(values...); err != nil {
			return nil, fmt.Errorf("error in row %d: %w", i+1, err)
		}
	}
	return b.Build()
}

func isKey(name string, keys []string) bool {
	for _, k := range keys {
		if k == name {
			return true
		}
	}
	return false
}
