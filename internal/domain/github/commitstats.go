package github

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// CommitStats is the per-account derived summary. It is fully replaced on
// every stats computation, never merged.
type CommitStats struct {
	ID                   uint `gorm:"primarykey"`
	AccountID            uint `gorm:"not null;uniqueIndex:idx_commit_stats_account"`
	CommitCountTotal     int  `gorm:"default:0"`
	CommitCountLastYear  int  `gorm:"default:0"`
	ContributionsByMonth datatypes.JSONType[map[string]int]
	LanguagesUsed        datatypes.JSONType[map[string]int]
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (CommitStats) TableName() string {
	return "github_commit_stats"
}

// CommitStatsRepository persists the one-per-account stats row.
type CommitStatsRepository interface {
	GetByAccount(ctx context.Context, accountID uint) (*CommitStats, error)
	// Upsert replaces the account's stats row entirely.
	Upsert(ctx context.Context, stats *CommitStats) error
}
