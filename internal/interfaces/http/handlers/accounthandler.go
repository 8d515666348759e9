// Package handlers implements the gin HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	accountusecases "github.com/folio-inc/folio/internal/application/account/usecases"
	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

type getMyAccountUseCase interface {
	Execute(ctx context.Context, cmd accountusecases.GetMyAccountCommand) (*account.Account, error)
}

type updateAccountUseCase interface {
	Execute(ctx context.Context, cmd accountusecases.UpdateAccountCommand) (*account.Account, error)
}

// AccountDTO is the external account shape. Credentials are write-only; only
// their presence is exposed.
type AccountDTO struct {
	ID               uint   `json:"id"`
	DisplayName      string `json:"display_name"`
	Slug             string `json:"slug"`
	GitHubUsername   string `json:"github_username"`
	QiitaUsername    string `json:"qiita_username"`
	HasGitHubToken   bool   `json:"has_github_token"`
	HasQiitaToken    bool   `json:"has_qiita_token"`
	HasOAuthOverride bool   `json:"has_oauth_override"`
}

func toAccountDTO(acct *account.Account) AccountDTO {
	return AccountDTO{
		ID:               acct.ID,
		DisplayName:      acct.DisplayName,
		Slug:             acct.Slug,
		GitHubUsername:   acct.GitHubUsername,
		QiitaUsername:    acct.QiitaUsername,
		HasGitHubToken:   acct.GitHubAccessToken != "",
		HasQiitaToken:    acct.QiitaAccessToken != "",
		HasOAuthOverride: acct.HasGitHubOAuthOverride(),
	}
}

type updateAccountRequest struct {
	DisplayName        *string `json:"display_name" validate:"omitempty,max=100"`
	GitHubUsername     *string `json:"github_username" validate:"omitempty,max=100"`
	GitHubAccessToken  *string `json:"github_access_token"`
	GitHubClientID     *string `json:"github_client_id"`
	GitHubClientSecret *string `json:"github_client_secret"`
	QiitaUsername      *string `json:"qiita_username" validate:"omitempty,max=100"`
	QiitaAccessToken   *string `json:"qiita_access_token"`
}

// AccountHandler handles account HTTP requests.
type AccountHandler struct {
	getMyAccount  getMyAccountUseCase
	updateAccount updateAccountUseCase
	logger        logger.Interface
}

func NewAccountHandler(
	getMyAccount getMyAccountUseCase,
	updateAccount updateAccountUseCase,
	logger logger.Interface,
) *AccountHandler {
	return &AccountHandler{
		getMyAccount:  getMyAccount,
		updateAccount: updateAccount,
		logger:        logger,
	}
}

// GetMe handles GET /api/account/me. The account is created on first access.
func (h *AccountHandler) GetMe(c *gin.Context) {
	userID, ok := utils.RequesterID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	acct, err := h.getMyAccount.Execute(c.Request.Context(), accountusecases.GetMyAccountCommand{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to get account", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toAccountDTO(acct))
}

// UpdateMe handles PATCH /api/account/me.
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	userID, ok := utils.RequesterID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := accountusecases.UpdateAccountCommand{
		UserID:             userID,
		DisplayName:        req.DisplayName,
		GitHubUsername:     req.GitHubUsername,
		GitHubAccessToken:  req.GitHubAccessToken,
		GitHubClientID:     req.GitHubClientID,
		GitHubClientSecret: req.GitHubClientSecret,
		QiitaUsername:      req.QiitaUsername,
		QiitaAccessToken:   req.QiitaAccessToken,
	}

	acct, err := h.updateAccount.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to update account", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "account updated", toAccountDTO(acct))
}
