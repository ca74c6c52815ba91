package parquet_accumulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danthegoodman1/icegraph/table"
)

type (
	// ParquetSchemaAccumulator collects flat columns, either declared with a
	// table type or inferred from JSON rows, and renders the parquet-go JSON schema
	// for them. Column order is first-seen order.
	ParquetSchemaAccumulator struct {
		schema ParquetSchema
		// intColumns are JSON columns that hold integers. JSON numbers cannot be
		// told apart, so every other number is a DOUBLE.
		intColumns map[string]bool
	}

	ParquetSchema struct {
		TagStructs SchemaTag        `json:"-,omitempty"`
		Fields     []*ParquetSchema `json:",omitempty"`
	}

	ParquetJSONSchema struct {
		Tag    string               `json:",omitempty"`
		Fields []*ParquetJSONSchema `json:",omitempty"`
	}

	SchemaTag struct {
		Name           string         `json:"name,omitempty"`
		Type           string         `json:"type,omitempty"`
		ConvertedType  string         `json:"convertedtype,omitempty"`
		RepetitionType RepetitionType `json:"repetitiontype,omitempty"`
		Encoding       string         `json:"encoding,omitempty"`
	}

	RepetitionType string
)

var (
	Optional RepetitionType = "OPTIONAL"
	Required RepetitionType = "REQUIRED"

	ErrUnsupportedType = errors.New("unsupported parquet column type")
)

func NewParquetAccumulator(intColumns ...string) ParquetSchemaAccumulator {
	ints := make(map[string]bool, len(intColumns))
	for _, c := range intColumns {
		ints[c] = true
	}
	return ParquetSchemaAccumulator{
		schema: ParquetSchema{
			TagStructs: SchemaTag{
				Name:           "parquet_go_root",
				RepetitionType: Required,
			},
		},
		intColumns: ints,
	}
}

// FromTableSchema builds an accumulator holding every field of s, in order
func FromTableSchema(s *table.Schema) (ParquetSchemaAccumulator, error) {
	pa := NewParquetAccumulator()
	for _, f := range s.Fields() {
		if err := pa.WriteField(f.Name, f.Type); err != nil {
			return pa, err
		}
	}
	return pa, nil
}

// WriteField declares a typed column. Redeclaring a column is a no-op.
func (pa *ParquetSchemaAccumulator) WriteField(name string, t table.DataType) error {
	if pa.fieldExists(name) {
		return nil
	}
	tag, err := tagForType(t)
	if err != nil {
		return fmt.Errorf("column %s: %w", name, err)
	}
	tag.Name = name
	tag.RepetitionType = Required
	pa.schema.Fields = append(pa.schema.Fields, &ParquetSchema{TagStructs: tag})
	return nil
}

// WriteRow accumulates the columns of a flat JSON row. New keys are added in
// sorted order so the schema does not depend on map iteration.
func (pa *ParquetSchemaAccumulator) WriteRow(row map[string]any) {
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if pa.fieldExists(key) {
			continue
		}
		rowSchema := pa.getParquetSchema(key, row[key])
		if rowSchema != nil {
			pa.schema.Fields = append(pa.schema.Fields, rowSchema)
		}
	}
}

// getParquetSchema infers the column for a JSON value, nil when it cannot be stored
func (pa *ParquetSchemaAccumulator) getParquetSchema(key string, item any) *ParquetSchema {
	var t table.DataType
	switch item.(type) {
	case string, *string:
		t = table.String
	case bool, *bool:
		t = table.Bool
	case float64, float32, int, int64, int32:
		if pa.intColumns[key] {
			t = table.Int64
		} else {
			t = table.Double
		}
	default:
		// nulls, nested lists and objects have no flat column
		return nil
	}
	tag, _ := tagForType(t)
	tag.Name = key
	tag.RepetitionType = Required
	return &ParquetSchema{TagStructs: tag}
}

func tagForType(t table.DataType) (SchemaTag, error) {
	switch t {
	case table.Int32:
		return SchemaTag{Type: "INT32"}, nil
	case table.Int64:
		return SchemaTag{Type: "INT64"}, nil
	case table.Float:
		return SchemaTag{Type: "FLOAT"}, nil
	case table.Double:
		return SchemaTag{Type: "DOUBLE"}, nil
	case table.Bool:
		return SchemaTag{Type: "BOOLEAN"}, nil
	case table.String:
		return SchemaTag{Type: "BYTE_ARRAY", ConvertedType: "UTF8", Encoding: "PLAIN"}, nil
	}
	return SchemaTag{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func (pa *ParquetSchemaAccumulator) fieldExists(fieldName string) (exists bool) {
	for _, field := range pa.schema.Fields {
		if field.TagStructs.Name == fieldName {
			return true
		}
	}
	return
}

func (pa *ParquetSchemaAccumulator) GetColumnNames() []string {
	var cols []string
	for _, field := range pa.schema.Fields {
		cols = append(cols, field.TagStructs.Name)
	}
	return cols
}

// GetDataType maps the parquet physical type back to a table type
func (ps *ParquetSchema) GetDataType() table.DataType {
	switch ps.TagStructs.Type {
	case "INT32":
		return table.Int32
	case "INT64":
		return table.Int64
	case "FLOAT":
		return table.Float
	case "DOUBLE":
		return table.Double
	case "BOOLEAN":
		return table.Bool
	case "BYTE_ARRAY":
		return table.String
	default:
		return table.Unknown
	}
}

// GetColumnTypes returns the types of columns in the same order as GetColumnNames
func (pa *ParquetSchemaAccumulator) GetColumnTypes() []string {
	var cols []string
	for _, field := range pa.schema.Fields {
		cols = append(cols, field.GetDataType().String())
	}
	return cols
}

// TableSchema returns the accumulated columns as a table schema
func (pa *ParquetSchemaAccumulator) TableSchema() *table.Schema {
	fields := make([]table.Field, 0, len(pa.schema.Fields))
	for _, field := range pa.schema.Fields {
		fields = append(fields, table.Field{Name: field.TagStructs.Name, Type: field.GetDataType()})
	}
	return table.NewSchema(fields...)
}

// ToParquetJSONSchema recursively converts
func (ps *ParquetSchema) ToParquetJSONSchema() *ParquetJSONSchema {
	var tagArr []string
	if ps.TagStructs.Type != "" {
		tagArr = append(tagArr, "type="+ps.TagStructs.Type)
	}
	if ps.TagStructs.ConvertedType != "" {
		tagArr = append(tagArr, "convertedtype="+ps.TagStructs.ConvertedType)
	}
	if ps.TagStructs.Encoding != "" {
		tagArr = append(tagArr, "encoding="+ps.TagStructs.Encoding)
	}
	if ps.TagStructs.Name != "" {
		tagArr = append(tagArr, "name="+ps.TagStructs.Name)
	}
	if string(ps.TagStructs.RepetitionType) != "" {
		tagArr = append(tagArr, "repetitiontype="+string(ps.TagStructs.RepetitionType))
	}
	var fields []*ParquetJSONSchema
	for _, field := range ps.Fields {
		fields = append(fields, field.ToParquetJSONSchema())
	}
	return &ParquetJSONSchema{
		Tag:    strings.Join(tagArr, ", "),
		Fields: fields,
	}
}

// GetSchemaString returns the JSON formatted schema string
func (pa *ParquetSchemaAccumulator) GetSchemaString() (string, error) {
	var fields []*ParquetJSONSchema
	for _, field := range pa.schema.Fields {
		fields = append(fields, field.ToParquetJSONSchema())
	}
	pjs := ParquetJSONSchema{
		Tag:    "name=parquet_go_root, repetitiontype=REQUIRED",
		Fields: fields,
	}

	b, err := json.Marshal(pjs)
	if err != nil {
		return "", fmt.Errorf("error in json.Marshal: %w", err)
	}
	return string(b), nil
}
