package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	oauthusecases "github.com/folio-inc/folio/internal/application/oauth/usecases"
	"github.com/folio-inc/folio/internal/interfaces/http/handlers/testutil"
	"github.com/folio-inc/folio/internal/shared/constants"
)

type mockCallback struct {
	gotCode  string
	gotState string
	outcome  *oauthusecases.CallbackOutcome
}

func (m *mockCallback) Execute(ctx context.Context, cmd oauthusecases.HandleGitHubCallbackCommand) *oauthusecases.CallbackOutcome {
	m.gotCode = cmd.Code
	m.gotState = cmd.State
	return m.outcome
}

func TestOAuthHandler_GitHubCallback(t *testing.T) {
	t.Run("success redirects to dashboard", func(t *testing.T) {
		callback := &mockCallback{outcome: &oauthusecases.CallbackOutcome{Success: true}}
		handler := NewOAuthHandler(callback, "http://localhost:3000", testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/oauth/github/callback", nil)
		testutil.SetQueryParams(c, map[string]string{"code": "the-code", "state": "42"})
		handler.GitHubCallback(c)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "http://localhost:3000/dashboard/github?success=true", w.Header().Get("Location"))
		assert.Equal(t, "the-code", callback.gotCode)
		assert.Equal(t, "42", callback.gotState)
	})

	t.Run("rejection redirects with reason code", func(t *testing.T) {
		callback := &mockCallback{outcome: &oauthusecases.CallbackOutcome{
			Success: false, Reason: constants.OAuthErrorInvalidUser,
		}}
		handler := NewOAuthHandler(callback, "http://localhost:3000", testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/oauth/github/callback", nil)
		testutil.SetQueryParams(c, map[string]string{"code": "the-code", "state": "abc"})
		handler.GitHubCallback(c)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "http://localhost:3000/dashboard/github?error=invalid_user", w.Header().Get("Location"))
	})
}
