// Package articles implements the article use cases on top of an article
// store, the authorization policy and a summarizer.
package articles

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub/pagination"
	"github.com/knowledgehub/knowledgehub/policy"
	"github.com/knowledgehub/knowledgehub/storage/model"
	"github.com/knowledgehub/knowledgehub/summarizer"
)

// DefaultSummarizeTimeout bounds a single summarizer call
const DefaultSummarizeTimeout = 30 * time.Second

// Page is a window of articles together with its pagination metadata
type Page struct {
	Articles   []model.Article
	Pagination pagination.Info
}

// Service implements the article operations
type Service struct {
	store            model.ArticlesStore
	summarizer       summarizer.Summarizer
	summarizeTimeout time.Duration
}

// NewService creates a new Service; a zero timeout uses
// DefaultSummarizeTimeout
func NewService(
	store model.ArticlesStore, s summarizer.Summarizer, summarizeTimeout time.Duration,
) *Service {
	if summarizeTimeout <= 0 {
		summarizeTimeout = DefaultSummarizeTimeout
	}
	return &Service{
		store:            store,
		summarizer:       s,
		summarizeTimeout: summarizeTimeout,
	}
}

// Create creates a new article owned by the actor
func (s *Service) Create(
	ctx context.Context, actor model.Actor, title, content string, tags []string,
) (*model.Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, model.ValidationError("title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, model.ValidationError("content is required")
	}
	if tags == nil {
		tags = []string{}
	}
	article := &model.Article{
		Title:   title,
		Content: content,
		Tags:    tags,
		OwnerID: actor.ID,
	}
	if err := s.store.Create(ctx, article); err != nil {
		return nil, dependencyError("create article", err)
	}
	return article, nil
}

// List returns the requested page of articles, newest first
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, dependencyError("count articles", err)
	}
	info := pagination.Paginate(total, page, limit)
	articles := []model.Article{}
	if info.Skip >= 0 && int64(info.Skip) < total {
		articles, err = s.store.List(ctx, info.Skip, info.Limit)
		if err != nil {
			return nil, dependencyError("list articles", err)
		}
	}
	return &Page{
		Articles:   articles,
		Pagination: info,
	}, nil
}

// Get returns a single article
func (s *Service) Get(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, dependencyError("get article", err)
	}
	return article, nil
}

// Update applies the non-empty fields of the update to the article
func (s *Service) Update(
	ctx context.Context, actor model.Actor, id uint, update model.ArticleUpdate,
) (*model.Article, error) {
	article, err := s.authorized(ctx, actor, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if update.Title != "" {
		article.Title = update.Title
	}
	if update.Content != "" {
		article.Content = update.Content
	}
	if update.Tags != nil {
		article.Tags = update.Tags
	}
	if err = s.store.Update(ctx, article); err != nil {
		return nil, dependencyError("update article", err)
	}
	return article, nil
}

// Delete removes an article
func (s *Service) Delete(ctx context.Context, actor model.Actor, id uint) error {
	if _, err := s.authorized(ctx, actor, id, policy.ActionDelete); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return dependencyError("delete article", err)
	}
	return nil
}

// Summarize generates a summary for the article, stores it and returns it.
// If the summarizer fails the article is left unchanged.
func (s *Service) Summarize(ctx context.Context, actor model.Actor, id uint) (string, error) {
	article, err := s.authorized(ctx, actor, id, policy.ActionSummarize)
	if err != nil {
		return "", err
	}
	sctx, cancel := context.WithTimeout(ctx, s.summarizeTimeout)
	defer cancel()
	summary, err := s.summarizer.Summarize(sctx, article.Content)
	if err != nil {
		log.WithError(err).WithField("article", id).Warn("summarization failed")
		return "", &model.DependencyError{
			Op:  "summarize article",
			Err: err,
		}
	}
	if err = s.store.SetSummary(ctx, id, summary); err != nil {
		return "", dependencyError("store summary", err)
	}
	return summary, nil
}

// authorized loads the article and checks that the actor may perform action
// on it
func (s *Service) authorized(
	ctx context.Context, actor model.Actor, id uint, action policy.Action,
) (*model.Article, error) {
	article, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, dependencyError("get article", err)
	}
	if !policy.CanAccess(actor, article.OwnerID, action) {
		return nil, model.ForbiddenError("insufficient permissions")
	}
	return article, nil
}

// dependencyError passes taxonomy errors of the store through and wraps
// everything else as a DependencyError
func dependencyError(op string, err error) error {
	var notFound model.NotFoundError
	if errors.As(err, &notFound) {
		return notFound
	}
	return &model.DependencyError{
		Op:  op,
		Err: err,
	}
}
