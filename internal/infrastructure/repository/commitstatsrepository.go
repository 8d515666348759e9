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

// CommitStatsRepository implements github.CommitStatsRepository.
type CommitStatsRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCommitStatsRepository creates a new commit stats store.
func NewCommitStatsRepository(db *gorm.DB, logger logger.Interface) github.CommitStatsRepository {
	return &CommitStatsRepository{db: db, logger: logger}
}

func (r *CommitStatsRepository) GetByAccount(ctx context.Context, accountID uint) (*github.CommitStats, error) {
	var stats github.CommitStats
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get commit stats: %w", err)
	}
	return &stats, nil
}

// Upsert replaces the one stats row the account owns.
func (r *CommitStatsRepository) Upsert(ctx context.Context, stats *github.CommitStats) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"commit_count_total", "commit_count_last_year",
				"contributions_by_month", "languages_used", "updated_at",
			}),
		}).
		Create(stats).Error
	if err != nil {
		r.logger.Errorw("failed to upsert commit stats", "account_id", stats.AccountID, "error", err)
		return fmt.Errorf("failed to upsert commit stats: %w", err)
	}
	return nil
}
