package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("ICEGRAPH_TEST_ENV", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("ICEGRAPH_TEST_ENV", "fallback"))

	t.Setenv("ICEGRAPH_TEST_ENV", "set")
	assert.Equal(t, "set", GetEnvOrDefault("ICEGRAPH_TEST_ENV", "fallback"))
}

func TestGetEnvOrDefaultInt(t *testing.T) {
	t.Setenv("ICEGRAPH_TEST_INT", "")
	assert.Equal(t, int64(7), GetEnvOrDefaultInt("ICEGRAPH_TEST_INT", 7))

	t.Setenv("ICEGRAPH_TEST_INT", "65536")
	assert.Equal(t, int64(65536), GetEnvOrDefaultInt("ICEGRAPH_TEST_INT", 7))
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(PermError("nope")))
	assert.True(t, IsPermanent(fmt.Errorf("wrapped: %w", PermError("nope"))))
	assert.False(t, IsPermanent(fmt.Errorf("plain")))
	assert.False(t, IsPermanent(nil))
}

func TestGenIDs(t *testing.T) {
	id := GenRandomID("f_")
	assert.True(t, strings.HasPrefix(id, "f_"))
	assert.Len(t, id, 24)

	a, b := GenKSortedID("g_"), GenKSortedID("g_")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "g_"))
}

func TestArrayOrEmpty(t *testing.T) {
	assert.NotNil(t, ArrayOrEmpty[int](nil))
	assert.Empty(t, ArrayOrEmpty[int](nil))
	assert.Equal(t, []int{1, 2}, ArrayOrEmpty([]int{1, 2}))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]int64{1, 5, 9}, 5))
	assert.False(t, Contains([]int64{1, 5, 9}, 4))
	assert.False(t, Contains(nil, "x"))
}
