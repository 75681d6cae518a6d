package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepos(names ...string) []Repository {
	repos := make([]Repository, len(names))
	for i, name := range names {
		repos[i] = Repository{
			ID:       int64(i + 1),
			Name:     name,
			FullName: "octocat/" + name,
			Owner:    "octocat",
		}
	}
	return repos
}

func TestCatalog_ReplaceAll(t *testing.T) {
	t.Run("replaces contents wholesale", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta"))
		require.Equal(t, 2, c.Len())

		c.ReplaceAll(testRepos("gamma"))

		assert.Equal(t, 1, c.Len())
		items := c.Items()
		assert.Equal(t, "gamma", items[0].Name)
	})

	t.Run("drops selection and batch state", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta"))
		c.Toggle(1)
		c.MarkPending([]int64{1})

		c.ReplaceAll(testRepos("alpha", "beta"))

		assert.Equal(t, 0, c.SelectedCount())
		r, ok := c.Get(1)
		require.True(t, ok)
		assert.Equal(t, StatusNone, r.Status)
	})

	t.Run("keeps first occurrence of duplicate ids", func(t *testing.T) {
		c := NewCatalog()
		repos := testRepos("alpha", "beta")
		repos[1].ID = repos[0].ID

		c.ReplaceAll(repos)

		assert.Equal(t, 1, c.Len())
		r, ok := c.Get(repos[0].ID)
		require.True(t, ok)
		assert.Equal(t, "alpha", r.Name)
	})
}

func TestCatalog_Clear(t *testing.T) {
	c := NewCatalog()
	c.ReplaceAll(testRepos("alpha", "beta"))
	c.Toggle(1)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.SelectedCount())
	assert.Empty(t, c.Selected())
}

func TestCatalog_Toggle(t *testing.T) {
	t.Run("selects and deselects", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))

		c.Toggle(1)
		r, _ := c.Get(1)
		assert.True(t, r.Selected)

		c.Toggle(1)
		r, _ = c.Get(1)
		assert.False(t, r.Selected)
	})

	t.Run("ignores unknown id", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))

		c.Toggle(99)

		assert.Equal(t, 0, c.SelectedCount())
	})

	t.Run("pending repositories are locked", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))
		c.Toggle(1)
		c.MarkPending([]int64{1})

		c.Toggle(1)

		r, _ := c.Get(1)
		assert.True(t, r.Selected, "toggle must not change selection mid-flight")
	})
}

func TestCatalog_ToggleAll(t *testing.T) {
	t.Run("selects every repository catalog-wide", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta", "gamma"))

		c.ToggleAll(true)

		assert.Equal(t, 3, c.SelectedCount())
	})

	t.Run("deselects every repository", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta"))
		c.ToggleAll(true)

		c.ToggleAll(false)

		assert.Equal(t, 0, c.SelectedCount())
	})

	t.Run("skips pending repositories", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta"))
		c.Toggle(1)
		c.MarkPending([]int64{1})

		c.ToggleAll(false)

		r, _ := c.Get(1)
		assert.True(t, r.Selected)
		assert.Equal(t, 1, c.SelectedCount())
	})

	t.Run("keeps existing selection order and appends the rest", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta", "gamma"))
		c.Toggle(3)
		c.Toggle(1)

		c.ToggleAll(true)

		sel := c.Selected()
		require.Len(t, sel, 3)
		assert.Equal(t, []int64{3, 1, 2}, []int64{sel[0].ID, sel[1].ID, sel[2].ID})
	})
}

func TestCatalog_Deselect(t *testing.T) {
	t.Run("clears one selection without touching others", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta"))
		c.ToggleAll(true)

		c.Deselect(1)

		assert.Equal(t, 1, c.SelectedCount())
		r, _ := c.Get(2)
		assert.True(t, r.Selected)
	})

	t.Run("pending repositories are locked", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))
		c.Toggle(1)
		c.MarkPending([]int64{1})

		c.Deselect(1)

		assert.Equal(t, 1, c.SelectedCount())
	})
}

func TestCatalog_Selected(t *testing.T) {
	t.Run("returns selection order not catalog order", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta", "gamma"))

		c.Toggle(2)
		c.Toggle(3)
		c.Toggle(1)

		sel := c.Selected()
		require.Len(t, sel, 3)
		assert.Equal(t, "beta", sel[0].Name)
		assert.Equal(t, "gamma", sel[1].Name)
		assert.Equal(t, "alpha", sel[2].Name)
	})

	t.Run("reselecting moves a repository to the end", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha", "beta"))
		c.Toggle(1)
		c.Toggle(2)

		c.Toggle(1)
		c.Toggle(1)

		sel := c.Selected()
		require.Len(t, sel, 2)
		assert.Equal(t, int64(2), sel[0].ID)
		assert.Equal(t, int64(1), sel[1].ID)
	})
}

func TestCatalog_StatusTransitions(t *testing.T) {
	t.Run("mark pending then resolve success", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))
		c.Toggle(1)

		c.MarkPending([]int64{1})
		r, _ := c.Get(1)
		assert.Equal(t, StatusPending, r.Status)

		c.Resolve(1, nil)
		r, _ = c.Get(1)
		assert.Equal(t, StatusDeleted, r.Status)
		assert.Empty(t, r.StatusReason)
	})

	t.Run("resolve failure keeps the provider message", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))
		c.MarkPending([]int64{1})

		c.Resolve(1, &DeleteError{RepoID: 1, FullName: "octocat/alpha", Message: "Must have admin rights"})

		r, _ := c.Get(1)
		assert.Equal(t, StatusFailed, r.Status)
		assert.Equal(t, "Must have admin rights", r.StatusReason)
	})

	t.Run("resolve is a no-op outside pending", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))

		c.Resolve(1, nil)

		r, _ := c.Get(1)
		assert.Equal(t, StatusNone, r.Status)
	})

	t.Run("a fresh batch re-enters pending and clears the old reason", func(t *testing.T) {
		c := NewCatalog()
		c.ReplaceAll(testRepos("alpha"))
		c.MarkPending([]int64{1})
		c.Resolve(1, &DeleteError{RepoID: 1, FullName: "octocat/alpha", Message: "boom"})

		c.MarkPending([]int64{1})

		r, _ := c.Get(1)
		assert.Equal(t, StatusPending, r.Status)
		assert.Empty(t, r.StatusReason)
	})
}

func TestCatalog_Languages(t *testing.T) {
	c := NewCatalog()
	repos := testRepos("alpha", "beta", "gamma", "delta")
	repos[0].Language = "Go"
	repos[1].Language = ""
	repos[2].Language = "TypeScript"
	repos[3].Language = "Go"

	c.ReplaceAll(repos)

	assert.Equal(t, []string{"Go", "TypeScript"}, c.Languages())
}
