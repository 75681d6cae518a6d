package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/filter"
	"github.com/reposweep/reposweep/internal/service"
	"github.com/reposweep/reposweep/internal/state"
)

// Command factories for async operations

// VerifyCmd checks the configured token against the hosting service
func VerifyCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		account, err := svc.Verify(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "verifying token"}
		}
		return VerifiedMsg{Account: *account}
	}
}

// LoadCatalogCmd fetches the owned repositories
func LoadCatalogCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) // 60s for large accounts
		defer cancel()

		count, truncated, err := svc.Refresh(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading repositories"}
		}
		return CatalogLoadedMsg{Count: count, Truncated: truncated}
	}
}

// sweepResult pairs the batch summary with its terminal error
type sweepResult struct {
	summary *service.SweepSummary
	err     error
}

// StartSweepCmd launches the delete batch with streaming progress updates.
// Uses a continuation pattern to pump all progress messages to the UI.
// The batch runs without a deadline: deletes are never cancelled mid-flight.
func StartSweepCmd(svc *service.SweepService) tea.Cmd {
	return func() tea.Msg {
		progressCh := make(chan service.SweepProgress)
		done := make(chan sweepResult, 1)

		// Start the background work
		go func() {
			summary, err := svc.Run(context.Background(), progressCh)
			done <- sweepResult{summary: summary, err: err}
		}()

		// Read the first message and return it with continuation context
		return readSweepProgress(progressCh, done)
	}
}

// readSweepProgress reads one message from the channel and creates a
// SweepProgressMsg with the continuation command embedded. A closed channel
// means the batch is over; the summary is collected from the result channel.
func readSweepProgress(progressCh <-chan service.SweepProgress, done <-chan sweepResult) tea.Msg {
	progress, ok := <-progressCh
	if !ok {
		res := <-done
		return SweepDoneMsg{Summary: res.summary, Err: res.err}
	}

	return SweepProgressMsg{
		Progress: progress,
		NextCmd:  listenSweepCmd(progressCh, done),
	}
}

// listenSweepCmd returns a command that reads the next message from the progress channel
func listenSweepCmd(progressCh <-chan service.SweepProgress, done <-chan sweepResult) tea.Cmd {
	return func() tea.Msg {
		return readSweepProgress(progressCh, done)
	}
}

// CopyReposCmd copies the full names of the given repositories to the clipboard
func CopyReposCmd(repos []domain.Repository) tea.Cmd {
	return func() tea.Msg {
		var b strings.Builder
		for _, repo := range repos {
			b.WriteString(repo.FullName)
			b.WriteString("\n")
		}
		if err := clipboard.WriteAll(b.String()); err != nil {
			return ErrMsg{Err: err, Context: "copying to clipboard"}
		}
		return CopiedMsg{Count: len(repos)}
	}
}

// CopyFailuresCmd copies the failure list from a batch summary to the clipboard
func CopyFailuresCmd(failures []*domain.DeleteError) tea.Cmd {
	return func() tea.Msg {
		var b strings.Builder
		for _, f := range failures {
			b.WriteString(fmt.Sprintf("%s: %s\n", f.FullName, f.Message))
		}
		if err := clipboard.WriteAll(b.String()); err != nil {
			return ErrMsg{Err: err, Context: "copying to clipboard"}
		}
		return CopiedMsg{Count: len(failures)}
	}
}

// SaveFilterCmd persists the filter settings in the background
func SaveFilterCmd(store *state.Store, cfg filter.Config) tea.Cmd {
	return func() tea.Msg {
		if err := store.SaveFilter(cfg); err != nil {
			return ErrMsg{Err: err, Context: "saving filter settings"}
		}
		return nil
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
