package usecases

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/infrastructure/repository"
	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/constants"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type mockExchanger struct {
	calls        int
	gotClientID  string
	exchangeFunc func(ctx context.Context, clientID, clientSecret, code string) (string, error)
}

func (m *mockExchanger) Exchange(ctx context.Context, clientID, clientSecret, code string) (string, error) {
	m.calls++
	m.gotClientID = clientID
	if m.exchangeFunc != nil {
		return m.exchangeFunc(ctx, clientID, clientSecret, code)
	}
	return "gho_new", nil
}

type mockIdentity struct {
	calls    int
	userFunc func(ctx context.Context, token string) (string, error)
}

func (m *mockIdentity) GetAuthenticatedUser(ctx context.Context, token string) (string, error) {
	m.calls++
	if m.userFunc != nil {
		return m.userFunc(ctx, token)
	}
	return "alice", nil
}

type callbackFixture struct {
	useCase     *HandleGitHubCallbackUseCase
	exchanger   *mockExchanger
	identity    *mockIdentity
	accountRepo account.Repository
	account     *account.Account
}

func newCallbackFixture(t *testing.T) *callbackFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Account{}))

	log := logger.NewLogger()
	accountRepo := repository.NewAccountRepository(db, log)
	acct := &account.Account{UserID: 1, DisplayName: "alice", Slug: "al1ce000"}
	require.NoError(t, db.Create(acct).Error)

	exchanger := &mockExchanger{}
	identity := &mockIdentity{}
	fallback := config.GitHubOAuthConfig{ClientID: "default-id", ClientSecret: "default-secret"}

	return &callbackFixture{
		useCase:     NewHandleGitHubCallbackUseCase(accountRepo, exchanger, identity, fallback, log),
		exchanger:   exchanger,
		identity:    identity,
		accountRepo: accountRepo,
		account:     acct,
	}
}

func (f *callbackFixture) state() string {
	return strconv.FormatUint(uint64(f.account.ID), 10)
}

func TestHandleGitHubCallback_Success(t *testing.T) {
	f := newCallbackFixture(t)

	outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
		Code: "the-code", State: f.state(),
	})
	assert.True(t, outcome.Success)
	assert.Equal(t, "default-id", f.exchanger.gotClientID)

	acct, err := f.accountRepo.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, "gho_new", acct.GitHubAccessToken)
	assert.Equal(t, "alice", acct.GitHubUsername)
}

func TestHandleGitHubCallback_UsesAccountOAuthOverride(t *testing.T) {
	f := newCallbackFixture(t)
	f.account.GitHubClientID = "custom-id"
	f.account.GitHubClientSecret = "custom-secret"
	require.NoError(t, f.accountRepo.Update(context.Background(), f.account))

	outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
		Code: "the-code", State: f.state(),
	})
	assert.True(t, outcome.Success)
	assert.Equal(t, "custom-id", f.exchanger.gotClientID)
}

func TestHandleGitHubCallback_MissingCode(t *testing.T) {
	f := newCallbackFixture(t)

	outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{State: f.state()})
	assert.False(t, outcome.Success)
	assert.Equal(t, constants.OAuthErrorNoCode, outcome.Reason)
	// No external call of any kind is made.
	assert.Zero(t, f.exchanger.calls)
	assert.Zero(t, f.identity.calls)
}

func TestHandleGitHubCallback_InvalidState(t *testing.T) {
	t.Run("non-numeric state skips the exchange entirely", func(t *testing.T) {
		f := newCallbackFixture(t)
		outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
			Code: "the-code", State: "abc",
		})
		assert.False(t, outcome.Success)
		assert.Equal(t, constants.OAuthErrorInvalidUser, outcome.Reason)
		assert.Zero(t, f.exchanger.calls)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newCallbackFixture(t)
		outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
			Code: "the-code", State: "99999",
		})
		assert.False(t, outcome.Success)
		assert.Equal(t, constants.OAuthErrorInvalidUser, outcome.Reason)
		assert.Zero(t, f.exchanger.calls)
	})
}

func TestHandleGitHubCallback_ExchangeFailures(t *testing.T) {
	t.Run("provider rejection", func(t *testing.T) {
		f := newCallbackFixture(t)
		f.exchanger.exchangeFunc = func(ctx context.Context, clientID, clientSecret, code string) (string, error) {
			return "", errors.NewRemoteError(http.StatusUnauthorized, "bad_verification_code")
		}
		outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
			Code: "bad", State: f.state(),
		})
		assert.Equal(t, constants.OAuthErrorTokenError, outcome.Reason)
	})

	t.Run("tokenless success response", func(t *testing.T) {
		f := newCallbackFixture(t)
		f.exchanger.exchangeFunc = func(ctx context.Context, clientID, clientSecret, code string) (string, error) {
			return "", errors.ErrNoAccessToken
		}
		outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
			Code: "the-code", State: f.state(),
		})
		assert.Equal(t, constants.OAuthErrorNoToken, outcome.Reason)
	})

	t.Run("transport failure", func(t *testing.T) {
		f := newCallbackFixture(t)
		f.exchanger.exchangeFunc = func(ctx context.Context, clientID, clientSecret, code string) (string, error) {
			return "", context.DeadlineExceeded
		}
		outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
			Code: "the-code", State: f.state(),
		})
		assert.Equal(t, constants.OAuthErrorServerError, outcome.Reason)
	})
}

func TestHandleGitHubCallback_IdentityFailure(t *testing.T) {
	f := newCallbackFixture(t)
	f.identity.userFunc = func(ctx context.Context, token string) (string, error) {
		return "", errors.NewRemoteError(http.StatusUnauthorized, "bad credentials")
	}

	outcome := f.useCase.Execute(context.Background(), HandleGitHubCallbackCommand{
		Code: "the-code", State: f.state(),
	})
	assert.Equal(t, constants.OAuthErrorNoUser, outcome.Reason)

	// Nothing is persisted on a rejected flow.
	acct, err := f.accountRepo.GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	assert.Empty(t, acct.GitHubAccessToken)
}
