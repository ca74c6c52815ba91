package parquet_accumulator

import (
	"testing"

	"github.com/danthegoodman1/gojsonutils"
	"github.com/danthegoodman1/icegraph/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaString(t *testing.T) {
	a := NewParquetAccumulator("src")
	a.WriteRow(map[string]any{
		"src": 1.0,
	})
	a.WriteRow(map[string]any{
		"weight": 1.2,
		"name":   "hey",
	})
	a.WriteRow(map[string]any{
		"tags": []any{"hey"},
		"ok":   true,
	})
	a.WriteRow(map[string]any{
		"name": "again",
		"src":  2,
	})

	schemaString, err := a.GetSchemaString()
	require.NoError(t, err)
	assert.Equal(t, `{"Tag":"name=parquet_go_root, repetitiontype=REQUIRED","Fields":[`+
		`{"Tag":"type=INT64, name=src, repetitiontype=REQUIRED"},`+
		`{"Tag":"type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN, name=name, repetitiontype=REQUIRED"},`+
		`{"Tag":"type=DOUBLE, name=weight, repetitiontype=REQUIRED"},`+
		`{"Tag":"type=BOOLEAN, name=ok, repetitiontype=REQUIRED"}]}`, schemaString)

	assert.Equal(t, []string{"src", "name", "weight", "ok"}, a.GetColumnNames())
	assert.Equal(t, []string{"int64", "string", "double", "bool"}, a.GetColumnTypes())
}

func TestFromTableSchema(t *testing.T) {
	s := table.NewSchema(
		table.Field{Name: "id", Type: table.Int64},
		table.Field{Name: "age", Type: table.Int32},
		table.Field{Name: "ratio", Type: table.Float},
		table.Field{Name: "name", Type: table.String},
	)
	pa, err := FromTableSchema(s)
	require.NoError(t, err)
	assert.Equal(t, s.Fields(), pa.TableSchema().Fields())

	_, err = FromTableSchema(table.NewSchema(table.Field{Name: "x", Type: table.Unknown}))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFlattenedRow(t *testing.T) {
	flat, err := gojsonutils.Flatten(map[string]any{
		"id": 10.0,
		"profile": map[string]any{
			"city": "nyc",
			"age":  31.0,
		},
	}, nil)
	require.NoError(t, err)
	flatMap, ok := flat.(map[string]any)
	require.True(t, ok)

	pa := NewParquetAccumulator("id")
	pa.WriteRow(flatMap)
	s := pa.TableSchema()
	require.Equal(t, 3, s.NumFields())
	assert.Equal(t, table.Field{Name: "id", Type: table.Int64}, s.Field(0))
	var types []table.DataType
	for _, f := range s.Fields()[1:] {
		types = append(types, f.Type)
	}
	assert.ElementsMatch(t, []table.DataType{table.String, table.Double}, types)
}
