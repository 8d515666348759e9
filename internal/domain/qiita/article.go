// Package qiita defines the locally cached mirror of a Qiita account's
// published articles.
package qiita

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Article mirrors one remote article. (AccountID, ArticleID) is the composite
// identity within an account's scope; Featured is user curation and survives
// re-sync. BodyHTML is sanitized before storage.
type Article struct {
	ID              uint   `gorm:"primarykey"`
	AccountID       uint   `gorm:"not null;uniqueIndex:idx_articles_account_article"`
	ArticleID       string `gorm:"size:255;not null;uniqueIndex:idx_articles_account_article"`
	Title           string `gorm:"size:255;not null"`
	URL             string `gorm:"size:500"`
	LikesCount      int    `gorm:"default:0"`
	StocksCount     int    `gorm:"default:0"`
	CommentsCount   int    `gorm:"default:0"`
	Featured        bool   `gorm:"default:false"`
	Tags            datatypes.JSONSlice[string]
	BodyMarkdown    string `gorm:"type:text"`
	BodyHTML        string `gorm:"type:text"`
	RemoteCreatedAt time.Time
	RemoteUpdatedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (Article) TableName() string {
	return "qiita_articles"
}

// RemoteArticle is one article as reported by the provider.
type RemoteArticle struct {
	ID            string
	Title         string
	URL           string
	LikesCount    int
	StocksCount   int
	CommentsCount int
	Tags          []string
	Body          string
	RenderedBody  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ArticleRepository persists cached articles for an account.
type ArticleRepository interface {
	GetByID(ctx context.Context, id uint) (*Article, error)
	// ListByAccount returns the account's cached articles, featured first,
	// newest first within each group.
	ListByAccount(ctx context.Context, accountID uint) ([]*Article, error)
	// ListArticleIDs returns the remote identifiers currently cached for the
	// account.
	ListArticleIDs(ctx context.Context, accountID uint) ([]string, error)
	// Upsert creates or updates by (account_id, article_id). Mirrored fields
	// are replaced; Featured is left untouched on update.
	Upsert(ctx context.Context, article *Article) error
	Update(ctx context.Context, article *Article) error
	// DeleteByArticleIDs removes the given remote identifiers from the
	// account's cache and returns the number of rows deleted.
	DeleteByArticleIDs(ctx context.Context, accountID uint, articleIDs []string) (int64, error)
}
