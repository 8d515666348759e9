package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type ToggleFeaturedCommand struct {
	AccountID uint
	ArticleID uint
}

// ToggleFeaturedUseCase flips the curation flag on one cached article.
type ToggleFeaturedUseCase struct {
	articleRepo qiita.ArticleRepository
	logger      logger.Interface
}

func NewToggleFeaturedUseCase(articleRepo qiita.ArticleRepository, logger logger.Interface) *ToggleFeaturedUseCase {
	return &ToggleFeaturedUseCase{articleRepo: articleRepo, logger: logger}
}

func (uc *ToggleFeaturedUseCase) Execute(ctx context.Context, cmd ToggleFeaturedCommand) (*qiita.Article, error) {
	article, err := uc.articleRepo.GetByID(ctx, cmd.ArticleID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load article", err.Error())
	}
	if article == nil || article.AccountID != cmd.AccountID {
		return nil, errors.NewNotFoundError("article not found")
	}

	article.Featured = !article.Featured
	if err := uc.articleRepo.Update(ctx, article); err != nil {
		return nil, errors.NewInternalError("failed to update article", err.Error())
	}

	uc.logger.Infow("article featured flag toggled",
		"account_id", cmd.AccountID, "article_id", article.ID, "featured", article.Featured)

	return article, nil
}
