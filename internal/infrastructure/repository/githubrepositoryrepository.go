package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// mirroredRepoColumns are the columns replaced on every upsert. Featured is
// deliberately absent so curation survives re-sync.
var mirroredRepoColumns = []string{
	"name", "html_url", "description", "language",
	"stargazers_count", "forks_count", "open_issues_count", "watchers_count",
	"is_fork", "is_private", "topics", "languages",
	"remote_created_at", "remote_updated_at", "remote_pushed_at", "updated_at",
}

// GitHubRepositoryRepository implements github.RepositoryRepository.
type GitHubRepositoryRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewGitHubRepositoryRepository creates a new cached repository store.
func NewGitHubRepositoryRepository(db *gorm.DB, logger logger.Interface) github.RepositoryRepository {
	return &GitHubRepositoryRepository{db: db, logger: logger}
}

func (r *GitHubRepositoryRepository) GetByID(ctx context.Context, repoID uint) (*github.Repository, error) {
	var repo github.Repository
	if err := r.db.WithContext(ctx).First(&repo, repoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}
	return &repo, nil
}

func (r *GitHubRepositoryRepository) ListByAccount(ctx context.Context, accountID uint) ([]*github.Repository, error) {
	var repos []*github.Repository
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("featured DESC, remote_pushed_at DESC").
		Find(&repos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repos, nil
}

func (r *GitHubRepositoryRepository) ListFullNames(ctx context.Context, accountID uint) ([]string, error) {
	var fullNames []string
	err := r.db.WithContext(ctx).
		Model(&github.Repository{}).
		Where("account_id = ?", accountID).
		Pluck("full_name", &fullNames).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list repository full names: %w", err)
	}
	return fullNames, nil
}

func (r *GitHubRepositoryRepository) ListSourceRepositories(ctx context.Context, accountID uint) ([]*github.Repository, error) {
	var repos []*github.Repository
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_fork = ?", accountID, false).
		Find(&repos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list source repositories: %w", err)
	}
	return repos, nil
}

// Upsert creates or updates by (account_id, full_name), replacing mirrored
// columns only.
func (r *GitHubRepositoryRepository) Upsert(ctx context.Context, repo *github.Repository) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "full_name"}},
			DoUpdates: clause.AssignmentColumns(mirroredRepoColumns),
		}).
		Create(repo).Error
	if err != nil {
		r.logger.Errorw("failed to upsert repository",
			"account_id", repo.AccountID, "full_name", repo.FullName, "error", err)
		return fmt.Errorf("failed to upsert repository: %w", err)
	}
	return nil
}

func (r *GitHubRepositoryRepository) Update(ctx context.Context, repo *github.Repository) error {
	if err := r.db.WithContext(ctx).Save(repo).Error; err != nil {
		r.logger.Errorw("failed to update repository", "id", repo.ID, "error", err)
		return fmt.Errorf("failed to update repository: %w", err)
	}
	return nil
}

func (r *GitHubRepositoryRepository) DeleteByFullNames(ctx context.Context, accountID uint, fullNames []string) (int64, error) {
	if len(fullNames) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND full_name IN ?", accountID, fullNames).
		Delete(&github.Repository{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete repositories: %w", result.Error)
	}
	return result.RowsAffected, nil
}
