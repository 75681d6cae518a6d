package github

import (
	"time"

	"github.com/reposweep/reposweep/internal/domain"
)

// userResponse is the subset of the GET /user payload we read
type userResponse struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// repoResponse is the subset of the GET /user/repos payload we read.
// Description and language arrive as null when unset; both decode to
// empty strings.
type repoResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Private     bool      `json:"private"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// errorResponse is the error payload the API attaches to rejections
type errorResponse struct {
	Message string `json:"message"`
}

// mapRepositories converts API responses to domain entities
func mapRepositories(in []repoResponse) []domain.Repository {
	out := make([]domain.Repository, 0, len(in))
	for _, r := range in {
		out = append(out, domain.Repository{
			ID:          r.ID,
			Name:        r.Name,
			FullName:    r.FullName,
			Owner:       r.Owner.Login,
			Private:     r.Private,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.Stars,
			Forks:       r.Forks,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out
}
