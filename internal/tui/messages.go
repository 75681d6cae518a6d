package tui

import (
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// VerifiedMsg signals that the access token was accepted
type VerifiedMsg struct {
	Account domain.Account
}

// CatalogLoadedMsg signals that the repository list has been fetched
type CatalogLoadedMsg struct {
	Count     int
	Truncated bool
}

// SweepProgressMsg carries one progress event from a running delete batch
type SweepProgressMsg struct {
	Progress service.SweepProgress
	NextCmd  interface{} // Continuation command (tea.Cmd) for streaming
}

// SweepDoneMsg signals that the delete batch has finished
type SweepDoneMsg struct {
	Summary *service.SweepSummary
	Err     error
}

// CopiedMsg signals that text was written to the system clipboard
type CopiedMsg struct {
	Count int
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}

// TickMsg is sent periodically to drive spinner animation
type TickMsg struct{}
