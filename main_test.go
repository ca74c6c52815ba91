package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danthegoodman1/icegraph/fragment/fragmenttest"
	"github.com/danthegoodman1/icegraph/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVertexFlag(t *testing.T) {
	src, path, err := parseVertexFlag("user=users.ndjson")
	require.NoError(t, err)
	assert.Equal(t, "user", src.Label)
	assert.Empty(t, src.IDField)
	assert.Equal(t, "users.ndjson", path)

	src, path, err = parseVertexFlag("item:sku=data/items.ndjson")
	require.NoError(t, err)
	assert.Equal(t, "item", src.Label)
	assert.Equal(t, "sku", src.IDField)
	assert.Equal(t, "data/items.ndjson", path)

	for _, bad := range []string{"user", "=users.ndjson", "user="} {
		_, _, err := parseVertexFlag(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseEdgeFlag(t *testing.T) {
	src, path, err := parseEdgeFlag("buys:user:item=buys.ndjson")
	require.NoError(t, err)
	assert.Equal(t, "buys", src.Label)
	assert.Equal(t, "user", src.Src)
	assert.Equal(t, "item", src.Dst)
	assert.Empty(t, src.SrcField)
	assert.Equal(t, "buys.ndjson", path)

	src, _, err = parseEdgeFlag("buys:user:item:buyer:sku=buys.ndjson")
	require.NoError(t, err)
	assert.Equal(t, "buyer", src.SrcField)
	assert.Equal(t, "sku", src.DstField)

	_, _, err = parseEdgeFlag("buys:user=buys.ndjson")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	srv := store.NewMemoryServer()
	srv.Put(fragmenttest.NewSnapshot(t, "g1"))
	store.RegisterMemoryServer("cli-test", srv)
	t.Cleanup(func() { store.UnregisterMemoryServer("cli-test") })

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", "--backend", "columnar", "--endpoint", "memory://cli-test", "--graph", "g1"})
	require.NoError(t, root.Execute())

	sizes := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n")[1:] {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 3, line)
		sizes[fields[0]+"/"+fields[1]] = fields[2]
	}
	assert.Equal(t, map[string]string{
		"vertex/user":  "4",
		"vertex/item":  "3",
		"edge/buys":    "5",
		"edge/follows": "4",
	}, sizes)
}

func TestInspectRequiresGraph(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"inspect", "--graph", ""})
	assert.Error(t, root.Execute())
}
