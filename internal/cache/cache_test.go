package cache

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Cache {
	t.Helper()
	return map[string]Cache{
		"memory": NewInMemoryCache(),
		"file":   NewFileCache(filepath.Join(t.TempDir(), "cache")),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Put(ctx, "batch-abc", `{"recipes":[]}`))

			exists, err := c.Exists(ctx, "batch-abc")
			require.NoError(t, err)
			assert.True(t, exists)

			rc, err := c.Get(ctx, "batch-abc")
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, `{"recipes":[]}`, string(data))
		})
	}
}

func TestMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Get(ctx, "nope")
			assert.ErrorIs(t, err, ErrNotFound)

			exists, err := c.Exists(ctx, "nope")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Put(ctx, "k", "one"))
			require.NoError(t, c.Put(ctx, "k", "two"))

			rc, err := c.Get(ctx, "k")
			require.NoError(t, err)
			defer rc.Close()
			data, _ := io.ReadAll(rc)
			assert.Equal(t, "two", string(data))
		})
	}
}

func TestFileCacheSanitizesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fc := NewFileCache(dir)
	require.NoError(t, fc.Put(ctx, "../escape", "x"))

	rc, err := fc.Get(ctx, "../escape")
	require.NoError(t, err)
	rc.Close()

	_, err = fc.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMakeCache(t *testing.T) {
	assert.IsType(t, &InMemoryCache{}, MakeCache(""))
	assert.IsType(t, &InMemoryCache{}, MakeCache("memory"))
	assert.IsType(t, &FileCache{}, MakeCache(t.TempDir()))
}
