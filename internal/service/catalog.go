package service

import (
	"context"
	"log/slog"

	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/forge"
)

// CatalogService keeps the session catalog in sync with the remote host.
// A fetch replaces the catalog wholesale; any fetch failure clears it so
// stale repositories are never shown.
type CatalogService struct {
	host    forge.RepositoryHost
	catalog *domain.Catalog
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(host forge.RepositoryHost, catalog *domain.Catalog, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		host:    host,
		catalog: catalog,
		logger:  logger,
	}
}

// Refresh fetches the owned repositories and replaces the catalog.
// It returns how many loaded and whether more exist beyond the first
// page, so the caller can surface the cutoff instead of hiding it.
func (s *CatalogService) Refresh(ctx context.Context) (int, bool, error) {
	repos, truncated, err := s.host.ListOwned(ctx)
	if err != nil {
		s.catalog.Clear()
		s.logger.Error("catalog refresh failed", "error", err)
		return 0, false, err
	}

	s.catalog.ReplaceAll(repos)
	s.logger.Info("catalog refreshed", "count", len(repos), "truncated", truncated)
	return len(repos), truncated, nil
}
