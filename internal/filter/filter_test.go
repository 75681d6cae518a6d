package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposweep/reposweep/internal/domain"
)

func repo(id int64, name string) domain.Repository {
	return domain.Repository{
		ID:       id,
		Name:     name,
		FullName: "octocat/" + name,
		Owner:    "octocat",
	}
}

func names(repos []domain.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func TestDerive_Query(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		items := []domain.Repository{repo(1, "alpha"), repo(2, "beta")}

		out := Derive(items, "", DefaultConfig())

		assert.Len(t, out, 2)
	})

	t.Run("matches name substring case-insensitively", func(t *testing.T) {
		items := []domain.Repository{repo(1, "Dotfiles"), repo(2, "scratch")}

		out := Derive(items, "DOT", DefaultConfig())

		require.Len(t, out, 1)
		assert.Equal(t, "Dotfiles", out[0].Name)
	})

	t.Run("matches description when name does not", func(t *testing.T) {
		a := repo(1, "alpha")
		a.Description = "experimental parser playground"
		b := repo(2, "beta")

		out := Derive([]domain.Repository{a, b}, "playground", DefaultConfig())

		require.Len(t, out, 1)
		assert.Equal(t, "alpha", out[0].Name)
	})

	t.Run("empty description never matches a non-empty query", func(t *testing.T) {
		items := []domain.Repository{repo(1, "alpha")}

		out := Derive(items, "zzz", DefaultConfig())

		assert.Empty(t, out)
	})
}

func TestDerive_Visibility(t *testing.T) {
	priv := repo(1, "secret")
	priv.Private = true
	pub := repo(2, "open")
	items := []domain.Repository{priv, pub}

	t.Run("both flags set means no filter", func(t *testing.T) {
		cfg := DefaultConfig()

		out := Derive(items, "", cfg)

		assert.Len(t, out, 2)
	})

	t.Run("neither flag set means no filter", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ShowPrivate = false
		cfg.ShowPublic = false

		out := Derive(items, "", cfg)

		assert.Len(t, out, 2)
	})

	t.Run("only private", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ShowPublic = false

		out := Derive(items, "", cfg)

		require.Len(t, out, 1)
		assert.True(t, out[0].Private)
	})

	t.Run("only public", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ShowPrivate = false

		out := Derive(items, "", cfg)

		require.Len(t, out, 1)
		assert.False(t, out[0].Private)
	})
}

func TestDerive_Language(t *testing.T) {
	goRepo := repo(1, "tool")
	goRepo.Language = "Go"
	tsRepo := repo(2, "web")
	tsRepo.Language = "TypeScript"
	bare := repo(3, "notes")
	items := []domain.Repository{goRepo, tsRepo, bare}

	t.Run("filters by exact language", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Language = "Go"

		out := Derive(items, "", cfg)

		require.Len(t, out, 1)
		assert.Equal(t, "tool", out[0].Name)
	})

	t.Run("language match is case-sensitive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Language = "go"

		out := Derive(items, "", cfg)

		assert.Empty(t, out)
	})

	t.Run("empty language means no filter", func(t *testing.T) {
		out := Derive(items, "", DefaultConfig())

		assert.Len(t, out, 3)
	})
}

func TestDerive_Sort(t *testing.T) {
	t.Run("by name ascending", func(t *testing.T) {
		items := []domain.Repository{repo(1, "b"), repo(2, "a"), repo(3, "c")}
		cfg := DefaultConfig()
		cfg.Sort = SortName

		out := Derive(items, "", cfg)

		assert.Equal(t, []string{"a", "b", "c"}, names(out))
	})

	t.Run("by stars descending", func(t *testing.T) {
		a := repo(1, "first")
		a.Stars = 3
		b := repo(2, "second")
		b.Stars = 1
		c := repo(3, "third")
		c.Stars = 2

		cfg := DefaultConfig()
		cfg.Sort = SortStars
		out := Derive([]domain.Repository{a, b, c}, "", cfg)

		assert.Equal(t, []string{"first", "third", "second"}, names(out))
	})

	t.Run("by forks descending", func(t *testing.T) {
		a := repo(1, "first")
		a.Forks = 1
		b := repo(2, "second")
		b.Forks = 5

		cfg := DefaultConfig()
		cfg.Sort = SortForks
		out := Derive([]domain.Repository{a, b}, "", cfg)

		assert.Equal(t, []string{"second", "first"}, names(out))
	})

	t.Run("by last updated descending", func(t *testing.T) {
		base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		a := repo(1, "stale")
		a.UpdatedAt = base
		b := repo(2, "fresh")
		b.UpdatedAt = base.Add(48 * time.Hour)

		out := Derive([]domain.Repository{a, b}, "", DefaultConfig())

		assert.Equal(t, []string{"fresh", "stale"}, names(out))
	})

	t.Run("by creation descending", func(t *testing.T) {
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		a := repo(1, "old")
		a.CreatedAt = base
		b := repo(2, "new")
		b.CreatedAt = base.AddDate(3, 0, 0)

		cfg := DefaultConfig()
		cfg.Sort = SortCreated
		out := Derive([]domain.Repository{a, b}, "", cfg)

		assert.Equal(t, []string{"new", "old"}, names(out))
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		a := repo(1, "first")
		b := repo(2, "second")
		c := repo(3, "third")

		cfg := DefaultConfig()
		cfg.Sort = SortStars
		out := Derive([]domain.Repository{a, b, c}, "", cfg)

		assert.Equal(t, []string{"first", "second", "third"}, names(out))
	})
}

func TestDerive_Purity(t *testing.T) {
	t.Run("repeated calls give identical output", func(t *testing.T) {
		a := repo(1, "zeta")
		a.Stars = 2
		b := repo(2, "alpha")
		b.Stars = 9
		items := []domain.Repository{a, b}
		cfg := DefaultConfig()
		cfg.Sort = SortStars

		first := Derive(items, "", cfg)
		second := Derive(items, "", cfg)

		assert.Equal(t, first, second)
	})

	t.Run("input order is untouched", func(t *testing.T) {
		items := []domain.Repository{repo(1, "b"), repo(2, "a")}
		cfg := DefaultConfig()
		cfg.Sort = SortName

		Derive(items, "", cfg)

		assert.Equal(t, []string{"b", "a"}, names(items))
	})
}

// Selection lives on the catalog, not the view, so a repository hidden by
// the current filter keeps its selected state.
func TestDerive_SelectionIndependence(t *testing.T) {
	c := domain.NewCatalog()
	priv := repo(1, "secret")
	priv.Private = true
	pub := repo(2, "open")
	c.ReplaceAll([]domain.Repository{priv, pub})
	c.ToggleAll(true)

	cfg := DefaultConfig()
	cfg.ShowPrivate = false
	out := Derive(c.Items(), "", cfg)

	require.Len(t, out, 1)
	assert.Equal(t, "open", out[0].Name)

	hidden, ok := c.Get(1)
	require.True(t, ok)
	assert.True(t, hidden.Selected)
	assert.Equal(t, 2, c.SelectedCount())
}
