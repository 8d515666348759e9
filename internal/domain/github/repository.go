// Package github defines the locally cached mirror of a GitHub account's
// repositories and derived commit statistics.
package github

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Repository mirrors one remote repository. Mirrored and enriched fields are
// overwritten on every sync; Featured is user curation and survives re-sync.
// (AccountID, FullName) is the composite identity within an account's scope.
type Repository struct {
	ID              uint   `gorm:"primarykey"`
	AccountID       uint   `gorm:"not null;uniqueIndex:idx_repos_account_full_name"`
	FullName        string `gorm:"size:255;not null;uniqueIndex:idx_repos_account_full_name"`
	Name            string `gorm:"size:255;not null"`
	HTMLURL         string `gorm:"size:500"`
	Description     string `gorm:"type:text"`
	Language        string `gorm:"size:100"`
	StargazersCount int    `gorm:"default:0"`
	ForksCount      int    `gorm:"default:0"`
	OpenIssuesCount int    `gorm:"default:0"`
	WatchersCount   int    `gorm:"default:0"`
	IsFork          bool   `gorm:"default:false"`
	IsPrivate       bool   `gorm:"default:false"`
	Featured        bool   `gorm:"default:false"`
	Topics          datatypes.JSONSlice[string]
	Languages       datatypes.JSONType[map[string]int64]
	RemoteCreatedAt time.Time
	RemoteUpdatedAt time.Time
	RemotePushedAt  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (Repository) TableName() string {
	return "github_repositories"
}

// RepositoryRepository persists cached repositories for an account.
type RepositoryRepository interface {
	GetByID(ctx context.Context, id uint) (*Repository, error)
	// ListByAccount returns the account's cached repositories, featured first,
	// most recently pushed first within each group.
	ListByAccount(ctx context.Context, accountID uint) ([]*Repository, error)
	// ListFullNames returns the remote identifiers currently cached for the
	// account.
	ListFullNames(ctx context.Context, accountID uint) ([]string, error)
	// ListSourceRepositories returns the account's non-fork repositories.
	ListSourceRepositories(ctx context.Context, accountID uint) ([]*Repository, error)
	// Upsert creates or updates by (account_id, full_name). Mirrored and
	// enriched fields are replaced; Featured is left untouched on update.
	Upsert(ctx context.Context, repo *Repository) error
	Update(ctx context.Context, repo *Repository) error
	// DeleteByFullNames removes the given remote identifiers from the
	// account's cache and returns the number of rows deleted.
	DeleteByFullNames(ctx context.Context, accountID uint, fullNames []string) (int64, error)
}
