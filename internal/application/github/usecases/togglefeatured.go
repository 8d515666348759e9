package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type ToggleFeaturedCommand struct {
	AccountID    uint
	RepositoryID uint
}

// ToggleFeaturedUseCase flips the curation flag on one cached repository.
// Purely local, never touches the provider.
type ToggleFeaturedUseCase struct {
	repoRepo github.RepositoryRepository
	logger   logger.Interface
}

func NewToggleFeaturedUseCase(repoRepo github.RepositoryRepository, logger logger.Interface) *ToggleFeaturedUseCase {
	return &ToggleFeaturedUseCase{repoRepo: repoRepo, logger: logger}
}

func (uc *ToggleFeaturedUseCase) Execute(ctx context.Context, cmd ToggleFeaturedCommand) (*github.Repository, error) {
	repo, err := uc.repoRepo.GetByID(ctx, cmd.RepositoryID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load repository", err.Error())
	}
	// Records owned by other accounts are indistinguishable from absent ones.
	if repo == nil || repo.AccountID != cmd.AccountID {
		return nil, errors.NewNotFoundError("repository not found")
	}

	repo.Featured = !repo.Featured
	if err := uc.repoRepo.Update(ctx, repo); err != nil {
		return nil, errors.NewInternalError("failed to update repository", err.Error())
	}

	uc.logger.Infow("repository featured flag toggled",
		"account_id", cmd.AccountID, "repository_id", repo.ID, "featured", repo.Featured)

	return repo, nil
}
