package legprogress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestMarkAndHas(t *testing.T) {
	tr := openTestTracker(t)

	ok, err := tr.Has("act_section:C-46:en:0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tr.Mark("act_section:C-46:en:0"))

	ok, err = tr.Has("act_section:C-46:en:0")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasManyMixed(t *testing.T) {
	tr := openTestTracker(t)
	require.NoError(t, tr.MarkMany([]string{"a:1:en:0", "a:1:en:1"}))

	result, err := tr.HasMany([]string{"a:1:en:0", "a:1:en:1", "a:1:en:2"})
	require.NoError(t, err)
	assert.True(t, result["a:1:en:0"])
	assert.True(t, result["a:1:en:1"])
	assert.False(t, result["a:1:en:2"])
}

func TestCountAndClearByPrefix(t *testing.T) {
	tr := openTestTracker(t)
	require.NoError(t, tr.MarkMany([]string{
		"act_section:C-46:en:0", "act_section:C-46:en:1", "defined_term:C-46:en:0",
	}))

	count, err := tr.CountByPrefix("act_section:")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, tr.ClearByPrefix("act_section:"))

	count, err = tr.CountByPrefix("act_section:")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = tr.CountByPrefix("defined_term:")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSampleKeys(t *testing.T) {
	tr := openTestTracker(t)
	require.NoError(t, tr.MarkMany([]string{"x:1:en:0", "x:1:en:1", "x:1:en:2"}))

	keys, err := tr.SampleKeys("x:", 2)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}
