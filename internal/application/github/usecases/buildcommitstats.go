package usecases

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// commitCountLastYearCap bounds the recent-period count reported from the
// approximate search total.
const commitCountLastYearCap = 1000

type BuildCommitStatsCommand struct {
	AccountID uint
	Username  string
	Token     string
}

// BuildCommitStatsUseCase derives the per-account summary from the already
// reconciled cache plus a best-effort commit search. The auxiliary query
// failing degrades the counts to zero, it never fails the computation. The
// result fully replaces any prior stats row.
type BuildCommitStatsUseCase struct {
	repoRepo  github.RepositoryRepository
	statsRepo github.CommitStatsRepository
	client    GitHubClient
	logger    logger.Interface
}

func NewBuildCommitStatsUseCase(
	repoRepo github.RepositoryRepository,
	statsRepo github.CommitStatsRepository,
	client GitHubClient,
	logger logger.Interface,
) *BuildCommitStatsUseCase {
	return &BuildCommitStatsUseCase{
		repoRepo:  repoRepo,
		statsRepo: statsRepo,
		client:    client,
		logger:    logger,
	}
}

func (uc *BuildCommitStatsUseCase) Execute(ctx context.Context, cmd BuildCommitStatsCommand) (*github.CommitStats, error) {
	commitCount := 0
	if count, err := uc.client.SearchCommitCount(ctx, cmd.Username, cmd.Token); err != nil {
		uc.logger.Warnw("commit search failed, defaulting count to zero",
			"account_id", cmd.AccountID, "username", cmd.Username, "error", err)
	} else {
		commitCount = count
	}

	lastYear := commitCount
	if lastYear > commitCountLastYearCap {
		lastYear = commitCountLastYearCap
	}

	sourceRepos, err := uc.repoRepo.ListSourceRepositories(ctx, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source repositories: %w", err)
	}

	languagesUsed := map[string]int{}
	for _, repo := range sourceRepos {
		if repo.Language == "" {
			continue
		}
		languagesUsed[repo.Language]++
	}

	contributions := map[string]int{}
	for month := 1; month <= 12; month++ {
		contributions[fmt.Sprintf("%02d", month)] = 0
	}

	stats := &github.CommitStats{
		AccountID:            cmd.AccountID,
		CommitCountTotal:     commitCount,
		CommitCountLastYear:  lastYear,
		ContributionsByMonth: datatypes.NewJSONType(contributions),
		LanguagesUsed:        datatypes.NewJSONType(languagesUsed),
	}

	if err := uc.statsRepo.Upsert(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to store commit stats: %w", err)
	}

	uc.logger.Infow("commit stats updated",
		"account_id", cmd.AccountID,
		"commit_count_total", commitCount,
		"languages", len(languagesUsed),
	)

	return stats, nil
}
