// Package account defines the local identity that owns all synced portfolio
// data and its persistence contract.
package account

import "time"

// Account owns the cached provider data. Provider usernames are mutable and
// refreshed by sync and the OAuth callback; access tokens are write-only at
// the API boundary.
type Account struct {
	ID                 uint   `gorm:"primarykey"`
	UserID             uint   `gorm:"not null;uniqueIndex:idx_accounts_user_id"`
	DisplayName        string `gorm:"size:100;not null"`
	Slug               string `gorm:"size:32;not null;uniqueIndex:idx_accounts_slug"`
	GitHubUsername     string `gorm:"size:100"`
	GitHubAccessToken  string `gorm:"size:255"`
	GitHubClientID     string `gorm:"size:255"`
	GitHubClientSecret string `gorm:"size:255"`
	QiitaUsername      string `gorm:"size:100"`
	QiitaAccessToken   string `gorm:"size:255"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// HasGitHubOAuthOverride reports whether the account carries its own OAuth
// application credentials instead of the process-wide pair.
func (a *Account) HasGitHubOAuthOverride() bool {
	return a.GitHubClientID != "" && a.GitHubClientSecret != ""
}
