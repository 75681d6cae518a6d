package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/reposweep/reposweep/internal/domain"
	"github.com/reposweep/reposweep/internal/forge"
)

// SessionService owns the authenticated principal. Verification runs at
// startup and again before every deletion batch; a credential's validity
// or scopes can change between operations, so nothing is ever assumed
// from an earlier check.
type SessionService struct {
	host   forge.RepositoryHost
	logger *slog.Logger

	mu      sync.RWMutex
	account *domain.Account
}

// NewSessionService creates a new session service
func NewSessionService(host forge.RepositoryHost, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		host:   host,
		logger: logger,
	}
}

// Verify validates the credential against the host and records the
// acting account. On failure the stored account is cleared.
func (s *SessionService) Verify(ctx context.Context) (*domain.Account, error) {
	account, err := s.host.Verify(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.account = nil
		s.logger.Warn("credential verification failed", "error", err)
		return nil, err
	}

	s.account = account
	s.logger.Info("credential verified", "login", account.Login)
	return account, nil
}

// Account returns the most recently verified principal, or nil before
// the first successful verification
func (s *SessionService) Account() *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}
