package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/infrastructure/repository"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

func newAccountRepo(t *testing.T) account.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Account{}))
	return repository.NewAccountRepository(db, logger.NewLogger())
}

func TestGetMyAccount_CreatesOnFirstUse(t *testing.T) {
	repo := newAccountRepo(t)
	useCase := NewGetMyAccountUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	acct, err := useCase.Execute(ctx, GetMyAccountCommand{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, uint(7), acct.UserID)
	assert.Equal(t, "user7", acct.DisplayName)
	assert.NotEmpty(t, acct.Slug)

	again, err := useCase.Execute(ctx, GetMyAccountCommand{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, acct.ID, again.ID)
}

func TestUpdateAccount(t *testing.T) {
	repo := newAccountRepo(t)
	getUC := NewGetMyAccountUseCase(repo, logger.NewLogger())
	updateUC := NewUpdateAccountUseCase(repo, logger.NewLogger())
	ctx := context.Background()

	_, err := getUC.Execute(ctx, GetMyAccountCommand{UserID: 7})
	require.NoError(t, err)

	username := "alice"
	token := "gho_abc"
	acct, err := updateUC.Execute(ctx, UpdateAccountCommand{
		UserID:            7,
		GitHubUsername:    &username,
		GitHubAccessToken: &token,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", acct.GitHubUsername)
	assert.Equal(t, "gho_abc", acct.GitHubAccessToken)
	// Untouched fields keep their values.
	assert.Equal(t, "user7", acct.DisplayName)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	repo := newAccountRepo(t)
	updateUC := NewUpdateAccountUseCase(repo, logger.NewLogger())

	_, err := updateUC.Execute(context.Background(), UpdateAccountCommand{UserID: 404})
	assert.True(t, errors.IsNotFoundError(err))
}
