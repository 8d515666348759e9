package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	oauthusecases "github.com/folio-inc/folio/internal/application/oauth/usecases"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type handleGitHubCallbackUseCase interface {
	Execute(ctx context.Context, cmd oauthusecases.HandleGitHubCallbackCommand) *oauthusecases.CallbackOutcome
}

// OAuthHandler handles the provider-initiated OAuth callback. Its only
// response shape is a redirect back to the frontend; error detail travels as
// a reason code the frontend maps to a message.
type OAuthHandler struct {
	callback    handleGitHubCallbackUseCase
	frontendURL string
	logger      logger.Interface
}

func NewOAuthHandler(callback handleGitHubCallbackUseCase, frontendURL string, logger logger.Interface) *OAuthHandler {
	return &OAuthHandler{
		callback:    callback,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// GitHubCallback handles GET /api/oauth/github/callback.
func (h *OAuthHandler) GitHubCallback(c *gin.Context) {
	outcome := h.callback.Execute(c.Request.Context(), oauthusecases.HandleGitHubCallbackCommand{
		Code:  c.Query("code"),
		State: c.Query("state"),
	})

	target := h.frontendURL + "/dashboard/github"
	if outcome.Success {
		target += "?success=true"
	} else {
		target += "?error=" + string(outcome.Reason)
	}

	c.Redirect(http.StatusFound, target)
}
