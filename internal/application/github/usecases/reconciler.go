package usecases

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// SyncFailure records one item that could not be fully synced. The batch
// continues past it.
type SyncFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// SyncOutcome summarizes one reconciliation run.
type SyncOutcome struct {
	Upserted int
	Deleted  int64
	Failures []SyncFailure
}

// repoReconciler applies a freshly fetched remote repository set to the local
// cache: upsert everything observed, delete what is no longer observed. A
// single item's enrichment or upsert failure is recorded and skipped over,
// never aborting the run.
type repoReconciler struct {
	repoRepo github.RepositoryRepository
	client   GitHubClient
	logger   logger.Interface
}

func (r *repoReconciler) reconcile(ctx context.Context, accountID uint, token string, remote []github.RemoteRepo) (*SyncOutcome, error) {
	cachedNames, err := r.repoRepo.ListFullNames(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached repository names: %w", err)
	}

	outcome := &SyncOutcome{Failures: []SyncFailure{}}
	remoteNames := make(map[string]struct{}, len(remote))

	for _, remoteRepo := range remote {
		remoteNames[remoteRepo.FullName] = struct{}{}

		languages, topics := r.enrich(ctx, remoteRepo.FullName, token, outcome)

		repo := &github.Repository{
			AccountID:       accountID,
			FullName:        remoteRepo.FullName,
			Name:            remoteRepo.Name,
			HTMLURL:         remoteRepo.HTMLURL,
			Description:     remoteRepo.Description,
			Language:        remoteRepo.Language,
			StargazersCount: remoteRepo.StargazersCount,
			ForksCount:      remoteRepo.ForksCount,
			OpenIssuesCount: remoteRepo.OpenIssuesCount,
			WatchersCount:   remoteRepo.WatchersCount,
			IsFork:          remoteRepo.Fork,
			IsPrivate:       remoteRepo.Private,
			Topics:          datatypes.NewJSONSlice(topics),
			Languages:       datatypes.NewJSONType(languages),
			RemoteCreatedAt: remoteRepo.CreatedAt,
			RemoteUpdatedAt: remoteRepo.UpdatedAt,
			RemotePushedAt:  remoteRepo.PushedAt,
		}

		if err := r.repoRepo.Upsert(ctx, repo); err != nil {
			r.logger.Warnw("skipping repository after upsert failure",
				"account_id", accountID, "full_name", remoteRepo.FullName, "error", err)
			outcome.Failures = append(outcome.Failures, SyncFailure{
				Key:    remoteRepo.FullName,
				Reason: err.Error(),
			})
			continue
		}
		outcome.Upserted++
	}

	var stale []string
	for _, name := range cachedNames {
		if _, ok := remoteNames[name]; !ok {
			stale = append(stale, name)
		}
	}

	deleted, err := r.repoRepo.DeleteByFullNames(ctx, accountID, stale)
	if err != nil {
		return nil, fmt.Errorf("failed to delete stale repositories: %w", err)
	}
	outcome.Deleted = deleted

	return outcome, nil
}

// enrich fetches the per-item language breakdown and topic list. A failed
// lookup degrades that field to empty and records the failure; the item is
// still upserted.
func (r *repoReconciler) enrich(ctx context.Context, fullName, token string, outcome *SyncOutcome) (map[string]int64, []string) {
	languages, err := r.client.ListLanguages(ctx, fullName, token)
	if err != nil {
		r.logger.Warnw("failed to fetch repository languages", "full_name", fullName, "error", err)
		outcome.Failures = append(outcome.Failures, SyncFailure{
			Key:    fullName,
			Reason: fmt.Sprintf("languages lookup failed: %v", err),
		})
		languages = map[string]int64{}
	}

	topics, err := r.client.ListTopics(ctx, fullName, token)
	if err != nil {
		r.logger.Warnw("failed to fetch repository topics", "full_name", fullName, "error", err)
		outcome.Failures = append(outcome.Failures, SyncFailure{
			Key:    fullName,
			Reason: fmt.Sprintf("topics lookup failed: %v", err),
		})
		topics = []string{}
	}

	return languages, topics
}
