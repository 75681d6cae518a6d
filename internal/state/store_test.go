package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposweep/reposweep/internal/filter"
)

func TestStore_FilterRoundTrip(t *testing.T) {
	t.Run("saves and reloads settings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.db")
		store, err := NewStore(path)
		require.NoError(t, err)
		defer store.Close()

		cfg := filter.Config{
			ShowPrivate: true,
			ShowPublic:  false,
			Language:    "Go",
			Sort:        filter.SortStars,
		}
		require.NoError(t, store.SaveFilter(cfg))

		got, ok := store.LoadFilter()
		require.True(t, ok)
		assert.Equal(t, cfg, got)
	})

	t.Run("survives reopening the database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.db")

		store, err := NewStore(path)
		require.NoError(t, err)
		cfg := filter.DefaultConfig()
		cfg.Sort = filter.SortName
		require.NoError(t, store.SaveFilter(cfg))
		require.NoError(t, store.Close())

		reopened, err := NewStore(path)
		require.NoError(t, err)
		defer reopened.Close()

		got, ok := reopened.LoadFilter()
		require.True(t, ok)
		assert.Equal(t, filter.SortName, got.Sort)
	})

	t.Run("empty database reports nothing stored", func(t *testing.T) {
		store, err := NewStore(filepath.Join(t.TempDir(), "state.db"))
		require.NoError(t, err)
		defer store.Close()

		_, ok := store.LoadFilter()
		assert.False(t, ok)
	})
}

func TestStore_MemoryOnly(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.SaveFilter(filter.DefaultConfig()))

	_, ok := store.LoadFilter()
	assert.False(t, ok)
}
