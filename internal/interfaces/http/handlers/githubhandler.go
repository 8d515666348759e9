package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountusecases "github.com/folio-inc/folio/internal/application/account/usecases"
	githubusecases "github.com/folio-inc/folio/internal/application/github/usecases"
	"github.com/folio-inc/folio/internal/domain/github"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

type syncRepositoriesUseCase interface {
	Execute(ctx context.Context, cmd githubusecases.SyncRepositoriesCommand) (*githubusecases.SyncRepositoriesResult, error)
}

type listRepositoriesUseCase interface {
	Execute(ctx context.Context, cmd githubusecases.ListRepositoriesCommand) ([]*github.Repository, error)
}

type toggleRepositoryFeaturedUseCase interface {
	Execute(ctx context.Context, cmd githubusecases.ToggleFeaturedCommand) (*github.Repository, error)
}

// RepositoryDTO is the external shape of one cached repository.
type RepositoryDTO struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	FullName        string           `json:"full_name"`
	HTMLURL         string           `json:"html_url"`
	Description     string           `json:"description"`
	Language        string           `json:"language"`
	StargazersCount int              `json:"stargazers_count"`
	ForksCount      int              `json:"forks_count"`
	OpenIssuesCount int              `json:"open_issues_count"`
	WatchersCount   int              `json:"watchers_count"`
	IsFork          bool             `json:"is_fork"`
	Featured        bool             `json:"featured"`
	Topics          []string         `json:"topics"`
	Languages       map[string]int64 `json:"languages"`
	PushedAt        *time.Time       `json:"pushed_at"`
}

func toRepositoryDTO(repo *github.Repository) RepositoryDTO {
	topics := []string(repo.Topics)
	if topics == nil {
		topics = []string{}
	}
	languages := repo.Languages.Data()
	if languages == nil {
		languages = map[string]int64{}
	}
	return RepositoryDTO{
		ID:              repo.ID,
		Name:            repo.Name,
		FullName:        repo.FullName,
		HTMLURL:         repo.HTMLURL,
		Description:     repo.Description,
		Language:        repo.Language,
		StargazersCount: repo.StargazersCount,
		ForksCount:      repo.ForksCount,
		OpenIssuesCount: repo.OpenIssuesCount,
		WatchersCount:   repo.WatchersCount,
		IsFork:          repo.IsFork,
		Featured:        repo.Featured,
		Topics:          topics,
		Languages:       languages,
		PushedAt:        repo.RemotePushedAt,
	}
}

// GitHubHandler handles GitHub repository HTTP requests.
type GitHubHandler struct {
	resolveAccount getMyAccountUseCase
	sync           syncRepositoriesUseCase
	list           listRepositoriesUseCase
	toggle         toggleRepositoryFeaturedUseCase
	logger         logger.Interface
}

func NewGitHubHandler(
	resolveAccount getMyAccountUseCase,
	sync syncRepositoriesUseCase,
	list listRepositoriesUseCase,
	toggle toggleRepositoryFeaturedUseCase,
	logger logger.Interface,
) *GitHubHandler {
	return &GitHubHandler{
		resolveAccount: resolveAccount,
		sync:           sync,
		list:           list,
		toggle:         toggle,
		logger:         logger,
	}
}

// accountID resolves the requester's account, creating it on first use.
func (h *GitHubHandler) accountID(c *gin.Context) (uint, bool) {
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

// Sync handles POST /api/github/repositories/sync.
func (h *GitHubHandler) Sync(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	result, err := h.sync.Execute(c.Request.Context(), githubusecases.SyncRepositoriesCommand{AccountID: accountID})
	if err != nil {
		h.logger.Warnw("repository sync failed", "account_id", accountID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "GitHub repositories synced", gin.H{
		"repository_count": result.RepositoryCount,
		"deleted":          result.Deleted,
		"failures":         result.Failures,
	})
}

// List handles GET /api/github/repositories.
func (h *GitHubHandler) List(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	repos, err := h.list.Execute(c.Request.Context(), githubusecases.ListRepositoriesCommand{AccountID: accountID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	dtos := make([]RepositoryDTO, 0, len(repos))
	for _, repo := range repos {
		dtos = append(dtos, toRepositoryDTO(repo))
	}
	utils.SuccessResponse(c, http.StatusOK, "", dtos)
}

// ToggleFeatured handles PATCH /api/github/repositories/:id/toggle_featured.
func (h *GitHubHandler) ToggleFeatured(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	repoID, err := utils.ParseUintParam(c, "id", "repository")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	repo, err := h.toggle.Execute(c.Request.Context(), githubusecases.ToggleFeaturedCommand{
		AccountID:    accountID,
		RepositoryID: repoID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "featured flag updated", toRepositoryDTO(repo))
}
