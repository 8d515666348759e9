package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountusecases "github.com/folio-inc/folio/internal/application/account/usecases"
	qiitausecases "github.com/folio-inc/folio/internal/application/qiita/usecases"
	"github.com/folio-inc/folio/internal/domain/qiita"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

type syncArticlesUseCase interface {
	Execute(ctx context.Context, cmd qiitausecases.SyncArticlesCommand) (*qiitausecases.SyncArticlesResult, error)
}

type listArticlesUseCase interface {
	Execute(ctx context.Context, cmd qiitausecases.ListArticlesCommand) ([]*qiita.Article, error)
}

type toggleArticleFeaturedUseCase interface {
	Execute(ctx context.Context, cmd qiitausecases.ToggleFeaturedCommand) (*qiita.Article, error)
}

// ArticleDTO is the external shape of one cached article.
type ArticleDTO struct {
	ID            uint      `json:"id"`
	ArticleID     string    `json:"article_id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	LikesCount    int       `json:"likes_count"`
	StocksCount   int       `json:"stocks_count"`
	CommentsCount int       `json:"comments_count"`
	Featured      bool      `json:"featured"`
	Tags          []string  `json:"tags"`
	BodyHTML      string    `json:"body_html"`
	PublishedAt   time.Time `json:"published_at"`
}

func toArticleDTO(article *qiita.Article) ArticleDTO {
	tags := []string(article.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ArticleDTO{
		ID:            article.ID,
		ArticleID:     article.ArticleID,
		Title:         article.Title,
		URL:           article.URL,
		LikesCount:    article.LikesCount,
		StocksCount:   article.StocksCount,
		CommentsCount: article.CommentsCount,
		Featured:      article.Featured,
		Tags:          tags,
		BodyHTML:      article.BodyHTML,
		PublishedAt:   article.RemoteCreatedAt,
	}
}

// QiitaHandler handles Qiita article HTTP requests.
type QiitaHandler struct {
	resolveAccount getMyAccountUseCase
	sync           syncArticlesUseCase
	list           listArticlesUseCase
	toggle         toggleArticleFeaturedUseCase
	logger         logger.Interface
}

func NewQiitaHandler(
	resolveAccount getMyAccountUseCase,
	sync syncArticlesUseCase,
	list listArticlesUseCase,
	toggle toggleArticleFeaturedUseCase,
	logger logger.Interface,
) *QiitaHandler {
	return &QiitaHandler{
		resolveAccount: resolveAccount,
		sync:           sync,
		list:           list,
		toggle:         toggle,
		logger:         logger,
	}
}

func (h *QiitaHandler) accountID(c *gin.Context) (uint, bool) {
	userID, ok := utils.RequesterID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return 0, false
	}

	acct, err := h.resolveAccount.Execute(c.Request.Context(), accountusecases.GetMyAccountCommand{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to resolve account", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return 0, false
	}
	return acct.ID, true
}

// Sync handles POST /api/qiita/articles/sync.
func (h *QiitaHandler) Sync(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	result, err := h.sync.Execute(c.Request.Context(), qiitausecases.SyncArticlesCommand{AccountID: accountID})
	if err != nil {
		h.logger.Warnw("article sync failed", "account_id", accountID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Qiita articles synced", gin.H{
		"articles_count": result.ArticleCount,
		"deleted":        result.Deleted,
		"failures":       result.Failures,
	})
}

// List handles GET /api/qiita/articles.
func (h *QiitaHandler) List(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	articles, err := h.list.Execute(c.Request.Context(), qiitausecases.ListArticlesCommand{AccountID: accountID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	dtos := make([]ArticleDTO, 0, len(articles))
	for _, article := range articles {
		dtos = append(dtos, toArticleDTO(article))
	}
	utils.SuccessResponse(c, http.StatusOK, "", dtos)
}

// ToggleFeatured handles PATCH /api/qiita/articles/:id/toggle_featured.
func (h *QiitaHandler) ToggleFeatured(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	articleID, err := utils.ParseUintParam(c, "id", "article")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	article, err := h.toggle.Execute(c.Request.Context(), qiitausecases.ToggleFeaturedCommand{
		AccountID: accountID,
		ArticleID: articleID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "featured flag updated", toArticleDTO(article))
}
