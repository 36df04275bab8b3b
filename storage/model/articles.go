package model

import (
	"context"
	"time"
)

// Article is a short piece of content owned by the user that created it.
type Article struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Title   string   `gorm:"not null"`
	Content string   `gorm:"type:text;not null"`
	Tags    []string `gorm:"serializer:json"`
	// Summary is nil until a summarization succeeded
	Summary *string `gorm:"type:text"`

	OwnerID uint `gorm:"index;not null"`
	// OwnerUsername is filled from the users table when reading; it is never
	// written to the articles table
	OwnerUsername string `gorm:"->;-:migration"`
}

// ArticleUpdate holds the fields of a partial update. Empty strings and nil
// tags mean "not provided".
type ArticleUpdate struct {
	Title   string
	Content string
	Tags    []string
}

// ArticlesStore abstracts article persistence.
type ArticlesStore interface {
	// Create inserts the article and sets its ID and timestamps
	Create(ctx context.Context, article *Article) error
	// Get returns the article with the owner's username, or a NotFoundError
	Get(ctx context.Context, id uint) (*Article, error)
	// Count returns the total number of articles
	Count(ctx context.Context) (int64, error)
	// List returns a window of articles ordered newest first
	List(ctx context.Context, skip, limit int) ([]Article, error)
	// Update persists title, content and tags of the article
	Update(ctx context.Context, article *Article) error
	// SetSummary stores the summary of the article with the given id
	SetSummary(ctx context.Context, id uint, summary string) error
	// Delete removes an article, returns a NotFoundError if it does not exist
	Delete(ctx context.Context, id uint) error
}
