package domain

import (
	"sort"
	"sync"
)

// Catalog is the session's full set of repositories for the authenticated
// account. It is replaced wholesale on each successful fetch and mutated
// field-by-field during a deletion batch. The sweep worker writes status
// fields from its own goroutine, so all access goes through the lock and
// read methods return copies.
type Catalog struct {
	mu       sync.RWMutex
	repos    []*Repository
	index    map[int64]int // id -> position in repos
	selOrder []int64       // ids in the order they were selected
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[int64]int),
	}
}

// ReplaceAll swaps in a freshly fetched repository list, dropping all
// selection and batch state. Duplicate identifiers keep their first
// occurrence.
func (c *Catalog) ReplaceAll(repos []Repository) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.repos = make([]*Repository, 0, len(repos))
	c.index = make(map[int64]int, len(repos))
	c.selOrder = nil
	for i := range repos {
		r := repos[i]
		if _, dup := c.index[r.ID]; dup {
			continue
		}
		r.Selected = false
		r.Status = StatusNone
		r.StatusReason = ""
		c.index[r.ID] = len(c.repos)
		c.repos = append(c.repos, &r)
	}
}

// Clear empties the catalog, used when a fetch fails so stale data is
// never shown against a broken session
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repos = nil
	c.index = make(map[int64]int)
	c.selOrder = nil
}

// Len returns the number of repositories in the catalog
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.repos)
}

// Items returns a snapshot of all repositories in catalog order
func (c *Catalog) Items() []Repository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Repository, len(c.repos))
	for i, r := range c.repos {
		out[i] = *r
	}
	return out
}

// Get returns a copy of the repository with the given id
func (c *Catalog) Get(id int64) (Repository, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return Repository{}, false
	}
	return *c.repos[i], true
}

// Toggle flips one repository's selection. Repositories in a running
// batch (StatusPending) are locked and ignore the toggle.
func (c *Catalog) Toggle(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok || c.repos[i].Status == StatusPending {
		return
	}
	if c.repos[i].Selected {
		c.repos[i].Selected = false
		c.removeFromOrder(id)
		return
	}
	c.repos[i].Selected = true
	c.selOrder = append(c.selOrder, id)
}

// ToggleAll sets every repository's selection, catalog-wide rather than
// view-scoped. Newly selected repositories append to the selection order
// in catalog order; already-selected ones keep their position. Pending
// repositories are locked and skipped either way.
func (c *Catalog) ToggleAll(selected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.repos {
		if r.Status == StatusPending {
			continue
		}
		if selected && !r.Selected {
			r.Selected = true
			c.selOrder = append(c.selOrder, r.ID)
		} else if !selected && r.Selected {
			r.Selected = false
			c.removeFromOrder(r.ID)
		}
	}
}

// Deselect clears one repository's selection without touching the rest,
// used by the confirmation view's per-item removal control
func (c *Catalog) Deselect(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok || c.repos[i].Status == StatusPending || !c.repos[i].Selected {
		return
	}
	c.repos[i].Selected = false
	c.removeFromOrder(id)
}

// Selected returns copies of the selected repositories in the order the
// user selected them, which is the order a batch processes them in
func (c *Catalog) Selected() []Repository {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Repository, 0, len(c.selOrder))
	for _, id := range c.selOrder {
		if i, ok := c.index[id]; ok && c.repos[i].Selected {
			out = append(out, *c.repos[i])
		}
	}
	return out
}

// SelectedCount returns the number of selected repositories
func (c *Catalog) SelectedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, r := range c.repos {
		if r.Selected {
			n++
		}
	}
	return n
}

// MarkPending moves the given repositories into the pending state as one
// transition, before any remote call is issued. A fresh batch may take a
// previously resolved repository back through pending.
func (c *Catalog) MarkPending(ids []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if i, ok := c.index[id]; ok {
			c.repos[i].Status = StatusPending
			c.repos[i].StatusReason = ""
		}
	}
}

// Resolve records one repository's batch outcome. A nil err marks it
// deleted; otherwise it is marked failed with the provider's reason.
// Only pending repositories resolve; anything else is left alone.
func (c *Catalog) Resolve(id int64, err *DeleteError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok || c.repos[i].Status != StatusPending {
		return
	}
	if err == nil {
		c.repos[i].Status = StatusDeleted
		return
	}
	c.repos[i].Status = StatusFailed
	c.repos[i].StatusReason = err.Message
}

// Languages returns the distinct non-empty language tags across the full
// catalog, lexicographically sorted. The filter panel offers these
// regardless of what the current view shows.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, r := range c.repos {
		if r.Language != "" {
			seen[r.Language] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// removeFromOrder drops id from the selection order. Caller holds the lock.
func (c *Catalog) removeFromOrder(id int64) {
	for i, v := range c.selOrder {
		if v == id {
			c.selOrder = append(c.selOrder[:i], c.selOrder[i+1:]...)
			return
		}
	}
}
