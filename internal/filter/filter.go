// Package filter derives the displayed repository subset from the full
// catalog. Derive is a pure function over its inputs; the caller decides
// when to re-derive (after a fetch, a keystroke in the search box, or a
// config change).
package filter

import (
	"sort"
	"strings"

	"github.com/reposweep/reposweep/internal/domain"
)

// SortKey identifies one of the supported sort orders
type SortKey int

const (
	// SortUpdated orders by last modification, newest first
	SortUpdated SortKey = iota
	// SortCreated orders by creation time, newest first
	SortCreated
	// SortName orders by name, A to Z
	SortName
	// SortStars orders by stargazer count, highest first
	SortStars
	// SortForks orders by fork count, highest first
	SortForks
)

// String returns the display name for the sort key
func (k SortKey) String() string {
	switch k {
	case SortUpdated:
		return "Last Updated"
	case SortCreated:
		return "Created"
	case SortName:
		return "Name"
	case SortStars:
		return "Stars"
	case SortForks:
		return "Forks"
	default:
		return "Unknown"
	}
}

// AllSortKeys returns the sort keys in menu order
func AllSortKeys() []SortKey {
	return []SortKey{SortUpdated, SortCreated, SortName, SortStars, SortForks}
}

// Config holds the structured filter and sort settings. Both visibility
// flags set, or neither, means visibility is not filtered.
type Config struct {
	ShowPrivate bool    `json:"show_private"` // Include private repositories
	ShowPublic  bool    `json:"show_public"`  // Include public repositories
	Language    string  `json:"language"`     // Exact-match language filter, empty for none
	Sort        SortKey `json:"sort"`         // Active sort order
}

// DefaultConfig returns the settings used before the user changes anything
func DefaultConfig() Config {
	return Config{
		ShowPrivate: true,
		ShowPublic:  true,
		Sort:        SortUpdated,
	}
}

// Derive returns the repositories matching query and cfg, sorted by
// cfg.Sort. The result is a fresh slice; items is never reordered or
// mutated. Matching is a case-insensitive substring test against name
// and description, with an empty query matching everything. The sort is
// stable, so ties keep the catalog's relative order.
func Derive(items []domain.Repository, query string, cfg Config) []domain.Repository {
	q := strings.ToLower(query)
	out := make([]domain.Repository, 0, len(items))
	for _, r := range items {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) {
			continue
		}
		if cfg.ShowPrivate != cfg.ShowPublic {
			if cfg.ShowPrivate && !r.Private {
				continue
			}
			if cfg.ShowPublic && r.Private {
				continue
			}
		}
		if cfg.Language != "" && r.Language != cfg.Language {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch cfg.Sort {
		case SortCreated:
			return a.CreatedAt.After(b.CreatedAt)
		case SortName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortStars:
			return a.Stars > b.Stars
		case SortForks:
			return a.Forks > b.Forks
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	})
	return out
}
