package account

import "context"

// Repository persists accounts. Lookup methods return (nil, nil) when the
// account does not exist.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Account, error)
	GetByUserID(ctx context.Context, userID uint) (*Account, error)
	// GetOrCreateByUserID returns the account owned by userID, creating it
	// with the given display name and a fresh slug when absent.
	GetOrCreateByUserID(ctx context.Context, userID uint, defaultDisplayName string) (*Account, error)
	Update(ctx context.Context, acct *Account) error
}
