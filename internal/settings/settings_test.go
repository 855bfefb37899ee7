package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "settings.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, Default(), store.Load())
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte(`{"style": "verbose"}`), 0644))

	got := store.Load()
	assert.Equal(t, "verbose", got.Style)
	// keys absent from the file keep their defaults
	assert.True(t, got.UseCache)
	assert.Equal(t, 5000, got.MaxDiffForRules)
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0644))
	assert.Equal(t, Default(), store.Load())
}

func TestSetAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("style", "short"))
	require.NoError(t, store.Set("use_cache", "false"))
	require.NoError(t, store.Set("max_diff_for_rules", "2000"))

	got := store.Load()
	assert.Equal(t, "short", got.Style)
	assert.False(t, got.UseCache)
	assert.Equal(t, 2000, got.MaxDiffForRules)

	v, err := store.Get("max_diff_for_rules")
	require.NoError(t, err)
	assert.Equal(t, "2000", v)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Set("style", "haiku"))
	assert.Error(t, store.Set("model", "mistral"))
	assert.Error(t, store.Set("use_cache", "maybe"))
	assert.Error(t, store.Set("max_diff_for_rules", "-5"))
	assert.Error(t, store.Set("nonexistent", "true"))

	// failed sets must not modify anything
	assert.Equal(t, Default(), store.Load())
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("style", "verbose"))
	require.NoError(t, store.Reset())
	assert.Equal(t, Default(), store.Load())
}

func TestGetUnknownKey(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get("bogus")
	assert.Error(t, err)
}

func TestKeysCoverEverySetting(t *testing.T) {
	store := newTestStore(t)
	for _, key := range Keys() {
		_, err := store.Get(key)
		assert.NoError(t, err, "key %q", key)
	}
}
