// Package usecases implements the application operations for account
// management.
package usecases

import (
	"context"
	"fmt"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
)

type GetMyAccountCommand struct {
	UserID uint
}

// GetMyAccountUseCase resolves the requester's account, creating it with a
// default display name and a fresh slug on first use.
type GetMyAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewGetMyAccountUseCase(accountRepo account.Repository, logger logger.Interface) *GetMyAccountUseCase {
	return &GetMyAccountUseCase{accountRepo: accountRepo, logger: logger}
}

func (uc *GetMyAccountUseCase) Execute(ctx context.Context, cmd GetMyAccountCommand) (*account.Account, error) {
	acct, err := uc.accountRepo.GetOrCreateByUserID(ctx, cmd.UserID, fmt.Sprintf("user%d", cmd.UserID))
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve account", err.Error())
	}
	return acct, nil
}
