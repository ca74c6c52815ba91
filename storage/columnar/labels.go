package columnar

import (
	"fmt"
	"strconv"

	"github.com/danthegoodman1/icegraph/fragment"
	"github.com/danthegoodman1/icegraph/storage"
)

// resolveLabel accepts a label name or a decimal label id
func resolveLabel(name string, byName func(string) (fragment.LabelID, bool), num int) (fragment.LabelID, error) {
	if id, ok := byName(name); ok {
		return id, nil
	}
	id, err := strconv.Atoi(name)
	if err != nil || id < 0 || id >= num {
		return -1, fmt.Errorf("%w: %q", storage.ErrUnknownLabel, name)
	}
	return fragment.LabelID(id), nil
}

func resolveVertexLabel(f fragment.Fragment, name string) (fragment.LabelID, error) {
	return resolveLabel(name, f.VertexLabelID, f.VertexLabelNum())
}

func resolveEdgeLabel(f fragment.Fragment, name string) (fragment.LabelID, error) {
	return resolveLabel(name, f.EdgeLabelID, f.EdgeLabelNum())
}
