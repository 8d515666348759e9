package usecases

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/infrastructure/repository"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/services/markdown"
)

type mockQiitaClient struct {
	listItemsFunc func(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error)
}

func (m *mockQiitaClient) ListItems(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error) {
	return m.listItemsFunc(ctx, username, token)
}

type articleSyncFixture struct {
	db          *gorm.DB
	useCase     *SyncArticlesUseCase
	client      *mockQiitaClient
	articleRepo qiita.ArticleRepository
	account     *account.Account
}

func newArticleSyncFixture(t *testing.T) *articleSyncFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Account{}, &qiita.Article{}))

	log := logger.NewLogger()
	accountRepo := repository.NewAccountRepository(db, log)
	articleRepo := repository.NewArticleRepository(db, log)

	acct := &account.Account{
		UserID: 1, DisplayName: "alice", Slug: "al1ce000",
		QiitaUsername: "alice", QiitaAccessToken: "qtok",
	}
	require.NoError(t, db.Create(acct).Error)

	client := &mockQiitaClient{}
	useCase := NewSyncArticlesUseCase(accountRepo, articleRepo, client, markdown.NewService(), log)

	return &articleSyncFixture{
		db:          db,
		useCase:     useCase,
		client:      client,
		articleRepo: articleRepo,
		account:     acct,
	}
}

func remoteArticle(id, title string) qiita.RemoteArticle {
	return qiita.RemoteArticle{
		ID:           id,
		Title:        title,
		URL:          "https://qiita.com/alice/items/" + id,
		Tags:         []string{"Go"},
		Body:         "# " + title,
		RenderedBody: "<h1>" + title + "</h1>",
		LikesCount:   1,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSyncArticles_ReconcilesRemoteSet(t *testing.T) {
	f := newArticleSyncFixture(t)
	ctx := context.Background()

	fetched := []qiita.RemoteArticle{remoteArticle("a1", "One"), remoteArticle("a2", "Two")}
	f.client.listItemsFunc = func(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error) {
		return fetched, nil
	}

	result, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ArticleCount)
	assert.Zero(t, result.Deleted)

	// One article disappears remotely.
	fetched = []qiita.RemoteArticle{remoteArticle("a2", "Two")}
	result, err = f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ArticleCount)
	assert.Equal(t, int64(1), result.Deleted)

	ids, err := f.articleRepo.ListArticleIDs(ctx, f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, ids)
}

func TestSyncArticles_SanitizesRenderedBody(t *testing.T) {
	f := newArticleSyncFixture(t)
	ctx := context.Background()

	item := remoteArticle("a1", "One")
	item.RenderedBody = `<h1>One</h1><script>alert("x")</script>`
	f.client.listItemsFunc = func(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error) {
		return []qiita.RemoteArticle{item}, nil
	}

	_, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.NoError(t, err)

	articles, err := f.articleRepo.ListByAccount(ctx, f.account.ID)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Contains(t, articles[0].BodyHTML, "<h1>One</h1>")
	assert.NotContains(t, articles[0].BodyHTML, "script")
}

func TestSyncArticles_RendersMarkdownWhenRenderedBodyMissing(t *testing.T) {
	f := newArticleSyncFixture(t)
	ctx := context.Background()

	item := remoteArticle("a1", "One")
	item.RenderedBody = ""
	item.Body = "**bold**"
	f.client.listItemsFunc = func(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error) {
		return []qiita.RemoteArticle{item}, nil
	}

	_, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.NoError(t, err)

	articles, err := f.articleRepo.ListByAccount(ctx, f.account.ID)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Contains(t, articles[0].BodyHTML, "<strong>bold</strong>")
}

func TestSyncArticles_PreservesFeaturedAcrossResync(t *testing.T) {
	f := newArticleSyncFixture(t)
	ctx := context.Background()

	item := remoteArticle("a1", "One")
	f.client.listItemsFunc = func(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error) {
		return []qiita.RemoteArticle{item}, nil
	}
	_, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.NoError(t, err)

	articles, err := f.articleRepo.ListByAccount(ctx, f.account.ID)
	require.NoError(t, err)
	articles[0].Featured = true
	require.NoError(t, f.articleRepo.Update(ctx, articles[0]))

	item.LikesCount = 30
	_, err = f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.NoError(t, err)

	articles, err = f.articleRepo.ListByAccount(ctx, f.account.ID)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.True(t, articles[0].Featured)
	assert.Equal(t, 30, articles[0].LikesCount)
}

func TestSyncArticles_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown account", func(t *testing.T) {
		f := newArticleSyncFixture(t)
		_, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: 999})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("missing credentials", func(t *testing.T) {
		f := newArticleSyncFixture(t)
		f.account.QiitaAccessToken = ""
		require.NoError(t, f.db.Save(f.account).Error)

		_, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})
}

func TestSyncArticles_ProviderRejectionSurfacesDetail(t *testing.T) {
	f := newArticleSyncFixture(t)
	ctx := context.Background()

	f.client.listItemsFunc = func(ctx context.Context, username, token string) ([]qiita.RemoteArticle, error) {
		return nil, errors.NewRemoteError(http.StatusNotFound, `{"message":"Not found"}`)
	}

	_, err := f.useCase.Execute(ctx, SyncArticlesCommand{AccountID: f.account.ID})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Details, "Not found")
}

func TestToggleFeatured_Article(t *testing.T) {
	f := newArticleSyncFixture(t)
	ctx := context.Background()
	useCase := NewToggleFeaturedUseCase(f.articleRepo, logger.NewLogger())

	seeded := &qiita.Article{AccountID: f.account.ID, ArticleID: "a1", Title: "One"}
	require.NoError(t, f.articleRepo.Upsert(ctx, seeded))

	article, err := useCase.Execute(ctx, ToggleFeaturedCommand{AccountID: f.account.ID, ArticleID: seeded.ID})
	require.NoError(t, err)
	assert.True(t, article.Featured)

	_, err = useCase.Execute(ctx, ToggleFeaturedCommand{AccountID: f.account.ID + 1, ArticleID: seeded.ID})
	assert.True(t, errors.IsNotFoundError(err))
}
