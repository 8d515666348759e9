// Package usecases implements the application operations for the Qiita
// article cache: on-demand sync and curation.
package usecases

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/services/markdown"
)

// QiitaClient is the read API surface the article sync needs.
type QiitaClient interface {
	ListItems(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error)
}

// SyncFailure records one article that could not be synced. The batch
// continues past it.
type SyncFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

type SyncArticlesCommand struct {
	AccountID uint
}

// SyncArticlesResult is the single outcome summary of one sync run.
type SyncArticlesResult struct {
	ArticleCount int
	Deleted      int64
	Failures     []SyncFailure
}

// SyncArticlesUseCase fetches the account's remote articles and reconciles
// them against the cache. Article bodies are stored with sanitized HTML; when
// the provider omits rendered HTML the markdown body is rendered locally.
type SyncArticlesUseCase struct {
	accountRepo account.Repository
	articleRepo qiita.ArticleRepository
	client      QiitaClient
	markdown    markdown.Service
	logger      logger.Interface
}

func NewSyncArticlesUseCase(
	accountRepo account.Repository,
	articleRepo qiita.ArticleRepository,
	client QiitaClient,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *SyncArticlesUseCase {
	return &SyncArticlesUseCase{
		accountRepo: accountRepo,
		articleRepo: articleRepo,
		client:      client,
		markdown:    markdownSvc,
		logger:      logger,
	}
}

func (uc *SyncArticlesUseCase) Execute(ctx context.Context, cmd SyncArticlesCommand) (*SyncArticlesResult, error) {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load account", err.Error())
	}
	if acct == nil {
		return nil, errors.NewNotFoundError("account not found")
	}
	if acct.QiitaUsername == "" || acct.QiitaAccessToken == "" {
		return nil, errors.NewBadRequestError("Qiita username and access token are not configured")
	}

	remote, err := uc.client.ListItems(ctx, acct.QiitaUsername, acct.QiitaAccessToken)
	if err != nil {
		if remoteErr := errors.AsRemoteError(err); remoteErr != nil {
			uc.logger.Warnw("Qiita rejected article fetch",
				"account_id", acct.ID, "status", remoteErr.StatusCode)
			return nil, errors.NewBadRequestError("failed to fetch articles from Qiita", remoteErr.Body)
		}
		uc.logger.Errorw("article fetch failed", "account_id", acct.ID, "error", err)
		return nil, errors.NewInternalError("failed to reach Qiita", err.Error())
	}

	outcome, err := uc.reconcile(ctx, acct.ID, remote)
	if err != nil {
		uc.logger.Errorw("article reconciliation failed", "account_id", acct.ID, "error", err)
		return nil, errors.NewInternalError("failed to reconcile articles", err.Error())
	}

	uc.logger.Infow("article sync completed",
		"account_id", acct.ID,
		"upserted", outcome.ArticleCount,
		"deleted", outcome.Deleted,
		"failures", len(outcome.Failures),
	)

	return outcome, nil
}

func (uc *SyncArticlesUseCase) reconcile(ctx context.Context, accountID uint, remote []qiita.RemoteArticle) (*SyncArticlesResult, error) {
	cachedIDs, err := uc.articleRepo.ListArticleIDs(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached article IDs: %w", err)
	}

	result := &SyncArticlesResult{Failures: []SyncFailure{}}
	remoteIDs := make(map[string]struct{}, len(remote))

	for _, item := range remote {
		remoteIDs[item.ID] = struct{}{}

		article := &qiita.Article{
			AccountID:       accountID,
			ArticleID:       item.ID,
			Title:           item.Title,
			URL:             item.URL,
			LikesCount:      item.LikesCount,
			StocksCount:     item.StocksCount,
			CommentsCount:   item.CommentsCount,
			Tags:            datatypes.NewJSONSlice(item.Tags),
			BodyMarkdown:    item.Body,
			BodyHTML:        uc.renderBody(item),
			RemoteCreatedAt: item.CreatedAt,
			RemoteUpdatedAt: item.UpdatedAt,
		}

		if err := uc.articleRepo.Upsert(ctx, article); err != nil {
			uc.logger.Warnw("skipping article after upsert failure",
				"account_id", accountID, "article_id", item.ID, "error", err)
			result.Failures = append(result.Failures, SyncFailure{Key: item.ID, Reason: err.Error()})
			continue
		}
		result.ArticleCount++
	}

	var stale []string
	for _, articleID := range cachedIDs {
		if _, ok := remoteIDs[articleID]; !ok {
			stale = append(stale, articleID)
		}
	}

	deleted, err := uc.articleRepo.DeleteByArticleIDs(ctx, accountID, stale)
	if err != nil {
		return nil, fmt.Errorf("failed to delete stale articles: %w", err)
	}
	result.Deleted = deleted

	return result, nil
}

// renderBody sanitizes the provider's rendered HTML, falling back to a local
// render of the markdown body when the provider omits it. A render failure
// degrades to an empty body rather than failing the item.
func (uc *SyncArticlesUseCase) renderBody(item qiita.RemoteArticle) string {
	if item.RenderedBody != "" {
		return uc.markdown.Sanitize(item.RenderedBody)
	}

	html, err := uc.markdown.ToHTMLSanitized(item.Body)
	if err != nil {
		uc.logger.Warnw("failed to render article body", "article_id", item.ID, "error", err)
		return ""
	}
	return html
}
