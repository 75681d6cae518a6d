package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/forge"
)

// SweepProgress reports per-repository progress during a deletion batch
type SweepProgress struct {
	RepoID   int64
	FullName string
	Index    int   // 1-based position within the batch
	Total    int   // batch size
	Resolved bool  // false when the call is starting, true when it finished
	Err      error // non-nil when the finished call failed
}

// SweepSummary aggregates one batch run
type SweepSummary struct {
	RunID      string                // correlates log lines for this batch
	Deleted    int                   // repositories removed remotely
	Failed     int                   // repositories whose deletion was rejected
	Failures   []*domain.DeleteError // per-repository reasons, in batch order
	Refetched  bool                  // catalog was reloaded after a clean run
	RefetchErr error                 // set when the post-run reload itself failed
}

// FullSuccess reports whether every repository in the batch was deleted
func (s *SweepSummary) FullSuccess() bool {
	return s.Failed == 0
}

// SweepService executes deletion batches. Calls run strictly one at a
// time with a courtesy pause between successes; one repository's failure
// is recorded on that repository and never stops the rest. Once started,
// a batch runs to completion over every selected repository.
type SweepService struct {
	host    forge.RepositoryHost
	session *SessionService
	fetcher *CatalogService
	catalog *domain.Catalog
	delay   time.Duration
	logger  *slog.Logger

	running atomic.Bool
}

// NewSweepService creates a new sweep service
func NewSweepService(host forge.RepositoryHost, session *SessionService, fetcher *CatalogService, catalog *domain.Catalog, delay time.Duration, logger *slog.Logger) *SweepService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SweepService{
		host:    host,
		session: session,
		fetcher: fetcher,
		catalog: catalog,
		delay:   delay,
		logger:  logger,
	}
}

// Running reports whether a batch is currently in flight
func (s *SweepService) Running() bool {
	return s.running.Load()
}

// Run executes one deletion batch over the current selection, in the
// order the user selected. Progress streams over progressCh, which is
// closed when the run finishes. Only pre-flight problems return an
// error; after the first remote call the run always ends in a summary.
//
// Pre-flight order matters: an empty selection fails before any remote
// call at all, and credential re-verification failure aborts with zero
// status mutations.
func (s *SweepService) Run(ctx context.Context, progressCh chan<- SweepProgress) (*SweepSummary, error) {
	defer close(progressCh)

	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrSweepRunning
	}
	defer s.running.Store(false)

	selected := s.catalog.Selected()
	if len(selected) == 0 {
		return nil, domain.ErrNothingSelected
	}

	account, err := s.session.Verify(ctx)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	total := len(selected)
	s.logger.Info("sweep started", "run_id", runID, "count", total, "login", account.Login)

	// One visible transition to pending before the first remote call
	ids := make([]int64, total)
	for i, r := range selected {
		ids[i] = r.ID
	}
	s.catalog.MarkPending(ids)

	summary := &SweepSummary{RunID: runID}
	for i, repo := range selected {
		progressCh <- SweepProgress{RepoID: repo.ID, FullName: repo.FullName, Index: i + 1, Total: total}

		if err := s.host.Delete(ctx, repo.Owner, repo.Name); err != nil {
			delErr := &domain.DeleteError{RepoID: repo.ID, FullName: repo.FullName, Message: err.Error()}
			s.catalog.Resolve(repo.ID, delErr)
			summary.Failed++
			summary.Failures = append(summary.Failures, delErr)
			s.logger.Error("delete failed", "run_id", runID, "repo", repo.FullName, "error", err)
			progressCh <- SweepProgress{RepoID: repo.ID, FullName: repo.FullName, Index: i + 1, Total: total, Resolved: true, Err: delErr}
			continue
		}

		s.catalog.Resolve(repo.ID, nil)
		summary.Deleted++
		s.logger.Info("repository deleted", "run_id", runID, "repo", repo.FullName)
		progressCh <- SweepProgress{RepoID: repo.ID, FullName: repo.FullName, Index: i + 1, Total: total, Resolved: true}

		// Courtesy pause before the next call, skipped after the final one
		if i < total-1 && s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	// A clean run is the only event that shrinks the catalog: refetch so
	// the local view matches the now-smaller remote state. After a
	// partial failure the catalog stays as-is, statuses visible inline.
	if summary.Failed == 0 {
		if _, _, err := s.fetcher.Refresh(ctx); err != nil {
			summary.RefetchErr = err
			s.logger.Error("post-sweep refetch failed", "run_id", runID, "error", err)
		} else {
			summary.Refetched = true
		}
	}

	s.logger.Info("sweep finished", "run_id", runID, "deleted", summary.Deleted, "failed", summary.Failed)
	return summary, nil
}
