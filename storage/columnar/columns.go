package columnar

import (
	"github.com/danthegoodman1/icegraph/attribute"
	"github.com/danthegoodman1/icegraph/gologger"
	"github.com/danthegoodman1/icegraph/table"
)

const (
	weightColumn = "weight"
	labelColumn  = "label"
)

var logger = gologger.NewComponentLogger("storage.columnar")

// numericColumn resolves name to a numeric column, logging when it is missing
func numericColumn(t *table.Table, name, label string) (table.Column, bool) {
	col, ok := t.ColumnByName(name)
	if !ok {
		logger.Debug().Str("label", label).Str("column", name).Msg("column not found")
		return nil, false
	}
	switch col.DataType() {
	case table.Int32, table.Int64, table.Float, table.Double:
		return col, true
	}
	logger.Debug().Str("label", label).Str("column", name).Str("type", col.DataType().String()).Msg("column is not numeric")
	return nil, false
}

func weightAt(t *table.Table, row int, label string) float32 {
	col, ok := numericColumn(t, weightColumn, label)
	if !ok {
		return 0
	}
	v, _ := table.Float64At(col, row)
	return float32(v)
}

func labelAt(t *table.Table, row int, label string) int32 {
	col, ok := numericColumn(t, labelColumn, label)
	if !ok {
		return 0
	}
	v, _ := table.Int64At(col, row)
	return int32(v)
}

func allWeights(t *table.Table, label string) ([]float32, bool) {
	col, ok := numericColumn(t, weightColumn, label)
	if !ok {
		return nil, false
	}
	weights := make([]float32, col.Len())
	for i := range weights {
		v, _ := table.Float64At(col, i)
		weights[i] = float32(v)
	}
	return weights, true
}

func allLabels(t *table.Table, label string) ([]int32, bool) {
	col, ok := numericColumn(t, labelColumn, label)
	if !ok {
		return nil, false
	}
	labels := make([]int32, col.Len())
	for i := range labels {
		v, _ := table.Int64At(col, i)
		labels[i] = int32(v)
	}
	return labels, true
}

func allAttributes(t *table.Table, startColumn int, label string) ([]attribute.Value, bool) {
	if !attribute.HasAttributes(t, startColumn) {
		logger.Debug().Str("label", label).Msg("no attribute columns")
		return nil, false
	}
	return attribute.DecodeTable(t, startColumn), true
}
