package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// mirroredArticleColumns are the columns replaced on every upsert. Featured
// is deliberately absent so curation survives re-sync.
var mirroredArticleColumns = []string{
	"title", "url", "likes_count", "stocks_count", "comments_count",
	"tags", "body_markdown", "body_html",
	"remote_created_at", "remote_updated_at", "updated_at",
}

// ArticleRepository implements qiita.ArticleRepository.
type ArticleRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewArticleRepository creates a new cached article store.
func NewArticleRepository(db *gorm.DB, logger logger.Interface) qiita.ArticleRepository {
	return &ArticleRepository{db: db, logger: logger}
}

func (r *ArticleRepository) GetByID(ctx context.Context, articleID uint) (*qiita.Article, error) {
	var article qiita.Article
	if err := r.db.WithContext(ctx).First(&article, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (r *ArticleRepository) ListByAccount(ctx context.Context, accountID uint) ([]*qiita.Article, error) {
	var articles []*qiita.Article
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("featured DESC, remote_created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

func (r *ArticleRepository) ListArticleIDs(ctx context.Context, accountID uint) ([]string, error) {
	var articleIDs []string
	err := r.db.WithContext(ctx).
		Model(&qiita.Article{}).
		Where("account_id = ?", accountID).
		Pluck("article_id", &articleIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list article IDs: %w", err)
	}
	return articleIDs, nil
}

// Upsert creates or updates by (account_id, article_id), replacing mirrored
// columns only.
func (r *ArticleRepository) Upsert(ctx context.Context, article *qiita.Article) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "article_id"}},
			DoUpdates: clause.AssignmentColumns(mirroredArticleColumns),
		}).
		Create(article).Error
	if err != nil {
		r.logger.Errorw("failed to upsert article",
			"account_id", article.AccountID, "article_id", article.ArticleID, "error", err)
		return fmt.Errorf("failed to upsert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *qiita.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		r.logger.Errorw("failed to update article", "id", article.ID, "error", err)
		return fmt.Errorf("failed to update article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) DeleteByArticleIDs(ctx context.Context, accountID uint, articleIDs []string) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND article_id IN ?", accountID, articleIDs).
		Delete(&qiita.Article{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete articles: %w", result.Error)
	}
	return result.RowsAffected, nil
}
