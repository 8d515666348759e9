package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type SyncRepositoriesCommand struct {
	AccountID uint
}

// SyncRepositoriesResult is the single outcome summary of one sync run.
type SyncRepositoriesResult struct {
	RepositoryCount int
	Deleted         int64
	Failures        []SyncFailure
}

// SyncRepositoriesUseCase runs the sequential sync pipeline: fetch the remote
// collection, reconcile it against the cache, then rebuild the derived stats.
// Only the primary fetch can abort the run; enrichment and stats degrade.
type SyncRepositoriesUseCase struct {
	accountRepo account.Repository
	reconciler  *repoReconciler
	stats       *BuildCommitStatsUseCase
	client      GitHubClient
	logger      logger.Interface
}

func NewSyncRepositoriesUseCase(
	accountRepo account.Repository,
	repoRepo github.RepositoryRepository,
	stats *BuildCommitStatsUseCase,
	client GitHubClient,
	logger logger.Interface,
) *SyncRepositoriesUseCase {
	return &SyncRepositoriesUseCase{
		accountRepo: accountRepo,
		reconciler:  &repoReconciler{repoRepo: repoRepo, client: client, logger: logger},
		stats:       stats,
		client:      client,
		logger:      logger,
	}
}

func (uc *SyncRepositoriesUseCase) Execute(ctx context.Context, cmd SyncRepositoriesCommand) (*SyncRepositoriesResult, error) {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load account", err.Error())
	}
	if acct == nil {
		return nil, errors.NewNotFoundError("account not found")
	}
	if acct.GitHubUsername == "" {
		return nil, errors.NewBadRequestError("GitHub username is not configured")
	}

	// The configured username must resolve to a GitHub user before any
	// collection fetch.
	if _, err := uc.client.GetUser(ctx, acct.GitHubUsername, acct.GitHubAccessToken); err != nil {
		if remoteErr := errors.AsRemoteError(err); remoteErr != nil {
			uc.logger.Warnw("GitHub rejected user lookup",
				"account_id", acct.ID, "username", acct.GitHubUsername, "status", remoteErr.StatusCode)
			return nil, errors.NewBadRequestError("failed to fetch user from GitHub", remoteErr.Body)
		}
		uc.logger.Errorw("GitHub user lookup failed",
			"account_id", acct.ID, "error", err)
		return nil, errors.NewInternalError("failed to reach GitHub", err.Error())
	}

	remote, err := uc.client.ListRepositories(ctx, acct.GitHubUsername, acct.GitHubAccessToken)
	if err != nil {
		if remoteErr := errors.AsRemoteError(err); remoteErr != nil {
			uc.logger.Warnw("GitHub rejected repository fetch",
				"account_id", acct.ID, "status", remoteErr.StatusCode)
			return nil, errors.NewBadRequestError("failed to fetch repositories from GitHub", remoteErr.Body)
		}
		uc.logger.Errorw("repository fetch failed",
			"account_id", acct.ID, "error", err)
		return nil, errors.NewInternalError("failed to reach GitHub", err.Error())
	}

	outcome, err := uc.reconciler.reconcile(ctx, acct.ID, acct.GitHubAccessToken, remote)
	if err != nil {
		uc.logger.Errorw("repository reconciliation failed", "account_id", acct.ID, "error", err)
		return nil, errors.NewInternalError("failed to reconcile repositories", err.Error())
	}

	// Stats are lower-confidence derived data; their failure never fails
	// the sync.
	statsCmd := BuildCommitStatsCommand{
		AccountID: acct.ID,
		Username:  acct.GitHubUsername,
		Token:     acct.GitHubAccessToken,
	}
	if _, err := uc.stats.Execute(ctx, statsCmd); err != nil {
		uc.logger.Warnw("commit stats build failed after sync",
			"account_id", acct.ID, "error", err)
	}

	uc.logger.Infow("repository sync completed",
		"account_id", acct.ID,
		"upserted", outcome.Upserted,
		"deleted", outcome.Deleted,
		"failures", len(outcome.Failures),
	)

	return &SyncRepositoriesResult{
		RepositoryCount: outcome.Upserted,
		Deleted:         outcome.Deleted,
		Failures:        outcome.Failures,
	}, nil
}
