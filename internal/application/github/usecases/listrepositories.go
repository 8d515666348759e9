package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/errors"
)

type ListRepositoriesCommand struct {
	AccountID uint
}

// ListRepositoriesUseCase returns the account's cached repositories, featured
// first.
type ListRepositoriesUseCase struct {
	repoRepo github.RepositoryRepository
}

func NewListRepositoriesUseCase(repoRepo github.RepositoryRepository) *ListRepositoriesUseCase {
	return &ListRepositoriesUseCase{repoRepo: repoRepo}
}

func (uc *ListRepositoriesUseCase) Execute(ctx context.Context, cmd ListRepositoriesCommand) ([]*github.Repository, error) {
	repos, err := uc.repoRepo.ListByAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list repositories", err.Error())
	}
	return repos, nil
}
