// Package github implements the GitHub REST v3 dialect of the forge
// client. Gitea and Forgejo speak the same surface, so pointing the base
// URL at one of those works unchanged.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/reposweep/reposweep/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "reposweep/1.0"
	maxPerPage     = 100 // provider-imposed listing cap

	// ScopeDeleteRepo is the capability a token must carry before any
	// destructive call is attempted
	ScopeDeleteRepo = "delete_repo"

	scopesHeader = "X-OAuth-Scopes"
)

// Client talks to a GitHub-dialect REST API with token authentication
type Client struct {
	baseURL    string
	token      string
	perPage    int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL, token string, perPage int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		perPage: perPage,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// apiResponse holds one completed request's status, headers, and body
type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

// message extracts the provider's error message, with a generic fallback
func (r *apiResponse) message() string {
	var e errorResponse
	if err := json.Unmarshal(r.body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", r.status)
}

// doRequest performs an authenticated API request. Only transport-level
// problems are errors here; status handling belongs to each endpoint.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) (*apiResponse, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("forge request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("forge request failed", "method", method, "url", reqURL, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &apiResponse{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// Verify validates the token against the identity endpoint and returns
// the acting account with its granted scopes. Hosts that omit the scope
// header (fine-grained tokens, some Forgejo builds) pass verification;
// scope enforcement then falls to delete time, where the provider's 403
// surfaces per item.
func (c *Client) Verify(ctx context.Context) (*domain.Account, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVerification, err)
	}

	if resp.status == http.StatusUnauthorized {
		return nil, domain.ErrInvalidCredential
	}
	if resp.status != http.StatusOK {
		c.logger.Error("identity lookup failed", "status", resp.status)
		return nil, fmt.Errorf("%w: %s", domain.ErrVerification, resp.message())
	}

	var user userResponse
	if err := json.Unmarshal(resp.body, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVerification, err)
	}

	account := &domain.Account{
		Login:  user.Login,
		Name:   user.Name,
		Scopes: parseScopes(resp.header.Get(scopesHeader)),
	}

	if len(resp.header.Values(scopesHeader)) > 0 && !account.HasScope(ScopeDeleteRepo) {
		return nil, fmt.Errorf("token for %s: %w", account.Login, domain.ErrMissingScope)
	}

	c.logger.Debug("verified account", "login", account.Login, "scopes", account.Scopes)
	return account, nil
}

// ListOwned fetches the repositories owned by the authenticated account,
// most recently updated first. Retrieval is a single page; the second
// return value reports whether more pages exist beyond it.
func (c *Client) ListOwned(ctx context.Context) ([]domain.Repository, bool, error) {
	query := url.Values{}
	query.Set("affiliation", "owner")
	query.Set("sort", "updated")
	query.Set("per_page", strconv.Itoa(c.perPage))

	resp, err := c.doRequest(ctx, http.MethodGet, "/user/repos", query)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	if resp.status == http.StatusUnauthorized {
		return nil, false, domain.ErrInvalidCredential
	}
	if resp.status != http.StatusOK {
		c.logger.Error("repository listing failed", "status", resp.status)
		return nil, false, fmt.Errorf("%w: %s", domain.ErrFetch, resp.message())
	}

	var repos []repoResponse
	if err := json.Unmarshal(resp.body, &repos); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	truncated := hasNextPage(resp.header.Get("Link"))
	if truncated {
		c.logger.Warn("listing truncated at one page", "loaded", len(repos))
	}

	return mapRepositories(repos), truncated, nil
}

// Delete removes one repository. Any rejection comes back as an error
// carrying the provider's reason; the caller records it per item.
func (c *Client) Delete(ctx context.Context, owner, name string) error {
	path := fmt.Sprintf("/repos/%s/%s", owner, name)

	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	if resp.status != http.StatusNoContent {
		c.logger.Error("delete rejected", "repo", owner+"/"+name, "status", resp.status)
		return errors.New(resp.message())
	}

	return nil
}

// parseScopes splits the comma-separated scope header into a clean list
func parseScopes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	scopes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// hasNextPage reports whether a Link header advertises another page
func hasNextPage(link string) bool {
	for _, part := range strings.Split(link, ",") {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
