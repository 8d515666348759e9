// Package repository implements the domain repository interfaces on GORM.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/domain/account"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// AccountRepository implements account.Repository.
type AccountRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB, logger logger.Interface) account.Repository {
	return &AccountRepository{db: db, logger: logger}
}

// GetByID retrieves an account by its primary key.
func (r *AccountRepository) GetByID(ctx context.Context, accountID uint) (*account.Account, error) {
	var acct account.Account
	if err := r.db.WithContext(ctx).First(&acct, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acct, nil
}

// GetByUserID retrieves the account owned by the given user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID uint) (*account.Account, error) {
	var acct account.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by user ID: %w", err)
	}
	return &acct, nil
}

// GetOrCreateByUserID returns the user's account, creating it on first use.
func (r *AccountRepository) GetOrCreateByUserID(ctx context.Context, userID uint, defaultDisplayName string) (*account.Account, error) {
	acct, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		return acct, nil
	}

	slug, err := id.NewSlug()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account slug: %w", err)
	}

	acct = &account.Account{
		UserID:      userID,
		DisplayName: defaultDisplayName,
		Slug:        slug,
	}
	if err := r.db.WithContext(ctx).Create(acct).Error; err != nil {
		r.logger.Errorw("failed to create account", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	r.logger.Infow("account created", "id", acct.ID, "user_id", userID, "slug", slug)
	return acct, nil
}

// Update persists the account's current state.
func (r *AccountRepository) Update(ctx context.Context, acct *account.Account) error {
	if err := r.db.WithContext(ctx).Save(acct).Error; err != nil {
		r.logger.Errorw("failed to update account", "id", acct.ID, "error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}
