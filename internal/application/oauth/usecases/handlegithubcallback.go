// Package usecases implements the OAuth callback flow that links a GitHub
// account to a local account.
package usecases

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/constants"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// TokenExchanger swaps an authorization code for an access token using the
// given OAuth app credentials.
type TokenExchanger interface {
	Exchange(ctx context.Context, clientID, clientSecret, code string) (string, error)
}

// IdentityClient resolves the login owning an access token.
type IdentityClient interface {
	GetAuthenticatedUser(ctx context.Context, token string) (string, error)
}

type HandleGitHubCallbackCommand struct {
	Code  string
	State string
}

// CallbackOutcome is the flow's only result shape. Reason is set exactly when
// Success is false.
type CallbackOutcome struct {
	Success bool
	Reason  constants.OAuthErrorCode
}

// HandleGitHubCallbackUseCase runs the callback side of the OAuth handshake.
// The state parameter is the only link between the unauthenticated callback
// and a local account; it is validated before any network call is made. Every
// failure maps to a reason code, the flow never returns an error.
type HandleGitHubCallbackUseCase struct {
	accountRepo account.Repository
	exchanger   TokenExchanger
	identity    IdentityClient
	fallback    config.GitHubOAuthConfig
	logger      logger.Interface
}

func NewHandleGitHubCallbackUseCase(
	accountRepo account.Repository,
	exchanger TokenExchanger,
	identity IdentityClient,
	fallback config.GitHubOAuthConfig,
	logger logger.Interface,
) *HandleGitHubCallbackUseCase {
	return &HandleGitHubCallbackUseCase{
		accountRepo: accountRepo,
		exchanger:   exchanger,
		identity:    identity,
		fallback:    fallback,
		logger:      logger,
	}
}

func (uc *HandleGitHubCallbackUseCase) Execute(ctx context.Context, cmd HandleGitHubCallbackCommand) *CallbackOutcome {
	if cmd.Code == "" {
		return uc.reject(constants.OAuthErrorNoCode, nil)
	}

	accountID, err := strconv.ParseUint(cmd.State, 10, 64)
	if err != nil {
		return uc.reject(constants.OAuthErrorInvalidUser, err)
	}

	acct, err := uc.accountRepo.GetByID(ctx, uint(accountID))
	if err != nil {
		return uc.reject(constants.OAuthErrorServerError, err)
	}
	if acct == nil {
		return uc.reject(constants.OAuthErrorInvalidUser, nil)
	}

	clientID, clientSecret := uc.fallback.ClientID, uc.fallback.ClientSecret
	if acct.HasGitHubOAuthOverride() {
		clientID, clientSecret = acct.GitHubClientID, acct.GitHubClientSecret
	}

	token, err := uc.exchanger.Exchange(ctx, clientID, clientSecret, cmd.Code)
	if err != nil {
		switch {
		case errors.IsRemoteError(err):
			return uc.reject(constants.OAuthErrorTokenError, err)
		case stderrors.Is(err, errors.ErrNoAccessToken):
			return uc.reject(constants.OAuthErrorNoToken, nil)
		default:
			return uc.reject(constants.OAuthErrorServerError, err)
		}
	}

	login, err := uc.identity.GetAuthenticatedUser(ctx, token)
	if err != nil || login == "" {
		return uc.reject(constants.OAuthErrorNoUser, err)
	}

	acct.GitHubAccessToken = token
	acct.GitHubUsername = login
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return uc.reject(constants.OAuthErrorServerError, err)
	}

	uc.logger.Infow("GitHub account linked", "account_id", acct.ID, "github_username", login)
	return &CallbackOutcome{Success: true}
}

func (uc *HandleGitHubCallbackUseCase) reject(reason constants.OAuthErrorCode, err error) *CallbackOutcome {
	detail := constants.GetOAuthErrorMessage(reason)
	if err != nil {
		uc.logger.Warnw("OAuth callback rejected", "reason", reason, "detail", detail, "error", err)
	} else {
		uc.logger.Warnw("OAuth callback rejected", "reason", reason, "detail", detail)
	}
	return &CallbackOutcome{Success: false, Reason: reason}
}
