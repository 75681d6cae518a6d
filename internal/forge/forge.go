package forge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reposweep/reposweep/internal/config"
	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/forge/github"
)

// RepositoryHost is the surface a hosting backend must implement:
// credential verification, owned-repository listing, and deletion.
type RepositoryHost interface {
	// Verify validates the credential and returns the acting account
	Verify(ctx context.Context) (*domain.Account, error)

	// ListOwned returns the account's repositories, most recently
	// updated first, and whether the listing was cut off at one page
	ListOwned(ctx context.Context) ([]domain.Repository, bool, error)

	// Delete removes one repository by owner and name
	Delete(ctx context.Context, owner, name string) error
}

// NewHost creates a RepositoryHost for the configured provider.
// This factory function abstracts away the specific backend dialect.
func NewHost(cfg *config.Config, logger *slog.Logger) (RepositoryHost, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Forge.URL == "" {
		return nil, fmt.Errorf("host URL is required")
	}

	if cfg.Forge.Token == "" {
		return nil, fmt.Errorf("access token is required")
	}

	switch cfg.Forge.Provider {
	case config.ProviderGitHub, "":
		return github.NewClient(cfg.Forge.URL, cfg.Forge.Token, cfg.Forge.PerPage, logger), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Forge.Provider)
	}
}
