package usecases

import (
	"context"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// UpdateAccountCommand carries optional field updates. Nil pointers leave the
// current value untouched; credentials are write-only and never echoed back.
type UpdateAccountCommand struct {
	UserID             uint
	DisplayName        *string
	GitHubUsername     *string
	GitHubAccessToken  *string
	GitHubClientID     *string
	GitHubClientSecret *string
	QiitaUsername      *string
	QiitaAccessToken   *string
}

type UpdateAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewUpdateAccountUseCase(accountRepo account.Repository, logger logger.Interface) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accountRepo: accountRepo, logger: logger}
}

func (uc *UpdateAccountUseCase) Execute(ctx context.Context, cmd UpdateAccountCommand) (*account.Account, error) {
	acct, err := uc.accountRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load account", err.Error())
	}
	if acct == nil {
		return nil, errors.NewNotFoundError("account not found")
	}

	if cmd.DisplayName != nil {
		acct.DisplayName = *cmd.DisplayName
	}
	if cmd.GitHubUsername != nil {
		acct.GitHubUsername = *cmd.GitHubUsername
	}
	if cmd.GitHubAccessToken != nil {
		acct.GitHubAccessToken = *cmd.GitHubAccessToken
	}
	if cmd.GitHubClientID != nil {
		acct.GitHubClientID = *cmd.GitHubClientID
	}
	if cmd.GitHubClientSecret != nil {
		acct.GitHubClientSecret = *cmd.GitHubClientSecret
	}
	if cmd.QiitaUsername != nil {
		acct.QiitaUsername = *cmd.QiitaUsername
	}
	if cmd.QiitaAccessToken != nil {
		acct.QiitaAccessToken = *cmd.QiitaAccessToken
	}

	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return nil, errors.NewInternalError("failed to update account", err.Error())
	}

	uc.logger.Infow("account updated", "account_id", acct.ID, "user_id", cmd.UserID)
	return acct, nil
}
