package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/shared/errors"
)

type ListArticlesCommand struct {
	AccountID uint
}

// ListArticlesUseCase returns the account's cached articles, featured first.
type ListArticlesUseCase struct {
	articleRepo qiita.ArticleRepository
}

func NewListArticlesUseCase(articleRepo qiita.ArticleRepository) *ListArticlesUseCase {
	return &ListArticlesUseCase{articleRepo: articleRepo}
}

func (uc *ListArticlesUseCase) Execute(ctx context.Context, cmd ListArticlesCommand) ([]*qiita.Article, error) {
	articles, err := uc.articleRepo.ListByAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list articles", err.Error())
	}
	return articles, nil
}
