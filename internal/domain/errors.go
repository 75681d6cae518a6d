package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidCredential indicates the token was rejected by the provider
	ErrInvalidCredential = errors.New("access token is invalid")

	// ErrMissingScope indicates the token lacks the delete_repo scope
	ErrMissingScope = errors.New("access token is missing the delete_repo scope")

	// ErrVerification indicates credential verification failed for another reason
	ErrVerification = errors.New("credential verification failed")

	// ErrFetch indicates the repository listing could not be retrieved
	ErrFetch = errors.New("repository listing failed")

	// ErrNothingSelected indicates a batch was requested over an empty selection
	ErrNothingSelected = errors.New("no repositories selected")

	// ErrSweepRunning indicates a batch is already in flight
	ErrSweepRunning = errors.New("a deletion batch is already running")
)

// DeleteError records a single failed deletion within a batch.
// The batch itself continues; the error is attached to the repository.
type DeleteError struct {
	RepoID   int64  // Catalog identifier of the failed repository
	FullName string // "owner/name" for display
	Message  string // Provider-supplied reason, or a generic fallback
}

// Error implements the error interface
func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s: %s", e.FullName, e.Message)
}
