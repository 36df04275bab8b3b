package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

// ArticlesStorage returns an ArticlesStorage
func (s *Storage) ArticlesStorage() *ArticlesStorage {
	return &ArticlesStorage{db: s.db}
}

// ArticlesStorage implements model.ArticlesStore using GORM
type ArticlesStorage struct {
	db *gorm.DB
}

// withOwner selects the article columns together with the owner's username
func (s *ArticlesStorage) withOwner(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&model.Article{}).
		Select("articles.*, users.username AS owner_username").
		Joins("LEFT JOIN users ON users.id = articles.owner_id")
}

// Create inserts a new article
func (s *ArticlesStorage) Create(ctx context.Context, article *model.Article) error {
	if article.Tags == nil {
		article.Tags = []string{}
	}
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return errors.Wrap(err, "articles: create failed")
	}
	var owner model.User
	if err := s.db.WithContext(ctx).Select("username").First(&owner, article.OwnerID).Error; err == nil {
		article.OwnerUsername = owner.Username
	}
	return nil
}

// Get returns a single article joined with its owner's username
func (s *ArticlesStorage) Get(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	err := s.withOwner(ctx).Where("articles.id = ?", id).Take(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("article not found: %d", id)
		}
		return nil, errors.Wrap(err, "articles: get failed")
	}
	return &article, nil
}

// Count returns the number of stored articles
func (s *ArticlesStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Article{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "articles: count failed")
	}
	return count, nil
}

// List returns up to limit articles after skipping skip, newest first
func (s *ArticlesStorage) List(ctx context.Context, skip, limit int) ([]model.Article, error) {
	articles := []model.Article{}
	err := s.withOwner(ctx).
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Offset(skip).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, errors.Wrap(err, "articles: list failed")
	}
	return articles, nil
}

// Update persists title, content and tags of an existing article. Racing
// updates of the same article are last-writer-wins; updating an article that
// no longer exists returns a model.NotFoundError.
func (s *ArticlesStorage) Update(ctx context.Context, article *model.Article) error {
	if article.Tags == nil {
		article.Tags = []string{}
	}
	res := s.db.WithContext(ctx).
		Model(article).
		Select("title", "content", "tags", "updated_at").
		Updates(article)
	if res.Error != nil {
		return errors.Wrap(res.Error, "articles: update failed")
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// mysql reports unchanged rows as not affected
	exists, err := s.exists(ctx, article.ID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NotFoundErrorFmt("article not found: %d", article.ID)
	}
	return nil
}

func (s *ArticlesStorage) exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Article{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "articles: lookup failed")
	}
	return count > 0, nil
}

// SetSummary stores the summary of an article
func (s *ArticlesStorage) SetSummary(ctx context.Context, id uint, summary string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("id = ?", id).
		Update("summary", summary)
	return errors.Wrap(res.Error, "articles: set summary failed")
}

// Delete removes an article by id
func (s *ArticlesStorage) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Article{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "articles: delete failed")
	}
	if res.RowsAffected == 0 {
		return model.NotFoundErrorFmt("article not found: %d", id)
	}
	return nil
}
