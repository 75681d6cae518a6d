package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposweep/reposweep/internal/domain"
)

func TestCatalogService_Refresh(t *testing.T) {
	t.Run("replaces the catalog and reports the cutoff", func(t *testing.T) {
		host := &fakeHost{repos: sweepRepos("alpha", "beta"), truncated: true}
		catalog := domain.NewCatalog()
		svc := NewCatalogService(host, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))

		count, truncated, err := svc.Refresh(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.True(t, truncated)
		assert.Equal(t, 2, catalog.Len())
	})

	t.Run("clears the catalog on failure", func(t *testing.T) {
		host := &fakeHost{repos: sweepRepos("alpha")}
		catalog := domain.NewCatalog()
		svc := NewCatalogService(host, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, _, err := svc.Refresh(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, catalog.Len())

		host.mu.Lock()
		host.listErr = domain.ErrFetch
		host.mu.Unlock()

		_, _, err = svc.Refresh(context.Background())

		assert.ErrorIs(t, err, domain.ErrFetch)
		assert.Equal(t, 0, catalog.Len(), "stale repositories are never shown")
	})
}

func TestSessionService_Verify(t *testing.T) {
	t.Run("stores the verified account", func(t *testing.T) {
		host := &fakeHost{}
		svc := NewSessionService(host, slog.New(slog.NewTextHandler(io.Discard, nil)))

		require.Nil(t, svc.Account())

		account, err := svc.Verify(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "octocat", account.Login)
		assert.Equal(t, account, svc.Account())
	})

	t.Run("clears the account when verification fails", func(t *testing.T) {
		host := &fakeHost{}
		svc := NewSessionService(host, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.Verify(context.Background())
		require.NoError(t, err)

		host.mu.Lock()
		host.verifyErr = domain.ErrInvalidCredential
		host.mu.Unlock()

		_, err = svc.Verify(context.Background())

		assert.ErrorIs(t, err, domain.ErrInvalidCredential)
		assert.Nil(t, svc.Account(), "authorization is never assumed from a prior check")
	})
}
