package domain

import (
	"fmt"
	"time"
)

// DeleteStatus tracks a repository through a deletion batch
type DeleteStatus int

const (
	// StatusNone means the repository is not part of any batch
	StatusNone DeleteStatus = iota
	// StatusPending means the repository is queued in the running batch
	StatusPending
	// StatusDeleted means the remote deletion succeeded
	StatusDeleted
	// StatusFailed means the remote deletion failed; see StatusReason
	StatusFailed
)

// String returns a human-readable representation of the delete status
func (s DeleteStatus) String() string {
	switch s {
	case StatusNone:
		return ""
	case StatusPending:
		return "Pending"
	case StatusDeleted:
		return "Deleted"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Repository represents one repository owned by the authenticated account
type Repository struct {
	ID          int64     // Provider's stable numeric identifier
	Name        string    // Short name without owner prefix
	FullName    string    // "owner/name", the deletion call target
	Owner       string    // Owning account login
	Private     bool      // Visibility flag
	Description string    // Empty when the provider has none
	Language    string    // Primary language, empty when undetected
	Stars       int       // Stargazer count
	Forks       int       // Fork count
	CreatedAt   time.Time // Repository creation time
	UpdatedAt   time.Time // Last modification time

	// Session-local state, never sent to the provider
	Selected     bool         // Marked for the next deletion batch
	Status       DeleteStatus // Current batch status
	StatusReason string       // Remote failure message when Status == StatusFailed
}

// AgeLabel returns a coarse human-readable age since last update
func (r Repository) AgeLabel(now time.Time) string {
	d := now.Sub(r.UpdatedAt)
	switch {
	case d < time.Hour:
		return "just now"
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}

// Account represents the authenticated principal
type Account struct {
	Login  string   // Account login name
	Name   string   // Display name, may be empty
	Scopes []string // OAuth scopes granted to the token
}

// HasScope reports whether the token carries the named scope
func (a Account) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
