// Package usecases implements the application operations for the GitHub
// repository cache: on-demand sync, derived commit stats, and curation.
package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/github"
)

// GitHubClient is the read API surface the sync pipeline needs.
type GitHubClient interface {
	GetUser(ctx context.Context, username, token string) (*github.RemoteUser, error)
	ListRepositories(ctx context.Context, username, token string) ([]github.RemoteRepo, error)
	ListLanguages(ctx context.Context, fullName, token string) (map[string]int64, error)
	ListTopics(ctx context.Context, fullName, token string) ([]string, error)
	SearchCommitCount(ctx context.Context, username, token string) (int, error)
}
