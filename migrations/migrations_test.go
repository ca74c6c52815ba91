package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"1_graphs.sql"}, names)
}
