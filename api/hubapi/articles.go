package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub/articles"
	"github.com/knowledgehub/knowledgehub/cache"
	"github.com/knowledgehub/knowledgehub/pagination"
	"github.com/knowledgehub/knowledgehub/storage/model"
)

type articleCreator struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type articleRes struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Tags      []string       `json:"tags"`
	Summary   *string        `json:"summary,omitempty"`
	CreatedBy articleCreator `json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func newArticleRes(a *model.Article) articleRes {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleRes{
		ID:      a.ID,
		Title:   a.Title,
		Content: a.Content,
		Tags:    tags,
		Summary: a.Summary,
		CreatedBy: articleCreator{
			ID:       a.OwnerID,
			Username: a.OwnerUsername,
		},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type articleListRes struct {
	Articles   []articleRes    `json:"articles"`
	Pagination pagination.Info `json:"pagination"`
}

type articleReq struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func articleCacheKey(id uint) string {
	return cache.Key(cache.KeyArticle, strconv.FormatUint(uint64(id), 10))
}

// parseArticleID returns the article id from the route; ids that are not
// numeric cannot exist
func parseArticleID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// cacheArticle stores the response data for article id and then re-reads the
// article. If the stored data is already outdated the entry is evicted again.
// Mutations committing after the re-read are evicted by
// articleCacheInvalidationMiddleware, which runs after the commit.
func cacheArticle(
	ctx context.Context, responseCache cache.Cache, service *articles.Service, id uint, data []byte,
	lifetime time.Duration,
) {
	key := articleCacheKey(id)
	if err := responseCache.Set(ctx, key, data, lifetime); err != nil {
		log.WithError(err).WithField("key", key).Warn("could not cache article")
		return
	}
	if current, err := service.Get(ctx, id); err == nil {
		currentData, err := json.Marshal(newArticleRes(current))
		if err == nil && bytes.Equal(currentData, data) {
			return
		}
	}
	if err := responseCache.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("could not evict outdated article from cache")
	}
}

// registerArticles wires the article handlers. All routes require a bearer
// token.
func registerArticles(
	r fiber.Router, service *articles.Service, responseCache cache.Cache, cacheLifetime time.Duration,
	bearer fiber.Handler,
) {
	g := r.Group("/articles", bearer)
	invalidate := articleCacheInvalidationMiddleware(responseCache)

	g.Post(
		"/", func(c *fiber.Ctx) error {
			var req articleReq
			if err := c.BodyParser(&req); err != nil {
				return sendError(c, fiber.StatusBadRequest, msgInvalidBody)
			}
			article, err := service.Create(c.UserContext(), actorFromCtx(c), req.Title, req.Content, req.Tags)
			if err != nil {
				return respondError(c, err, "Failed to create article")
			}
			return c.Status(fiber.StatusCreated).JSON(newArticleRes(article))
		},
	)

	g.Get(
		"/", func(c *fiber.Ctx) error {
			page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))
			res, err := service.List(c.UserContext(), page, limit)
			if err != nil {
				return respondError(c, err, "Failed to fetch articles")
			}
			list := make([]articleRes, len(res.Articles))
			for i := range res.Articles {
				list[i] = newArticleRes(&res.Articles[i])
			}
			return c.JSON(
				articleListRes{
					Articles:   list,
					Pagination: res.Pagination,
				},
			)
		},
	)

	g.Get(
		"/:id", func(c *fiber.Ctx) error {
			id, ok := parseArticleID(c)
			if !ok {
				return sendError(c, fiber.StatusNotFound, msgArticleNotFound)
			}
			key := articleCacheKey(id)
			var cached []byte
			set, err := responseCache.Get(c.UserContext(), key, &cached)
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("could not read article from cache")
			}
			if set {
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Send(cached)
			}
			article, err := service.Get(c.UserContext(), id)
			if err != nil {
				return respondError(c, err, "Failed to fetch article")
			}
			data, err := json.Marshal(newArticleRes(article))
			if err != nil {
				return respondError(c, err, "Failed to fetch article")
			}
			cacheArticle(c.UserContext(), responseCache, service, id, data, cacheLifetime)
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(data)
		},
	)

	g.Put(
		"/:id", invalidate, func(c *fiber.Ctx) error {
			id, ok := parseArticleID(c)
			if !ok {
				return sendError(c, fiber.StatusNotFound, msgArticleNotFound)
			}
			var req articleReq
			if err := c.BodyParser(&req); err != nil {
				return sendError(c, fiber.StatusBadRequest, msgInvalidBody)
			}
			article, err := service.Update(
				c.UserContext(), actorFromCtx(c), id, model.ArticleUpdate{
					Title:   req.Title,
					Content: req.Content,
					Tags:    req.Tags,
				},
			)
			if err != nil {
				return respondError(c, err, "Failed to update article")
			}
			return c.JSON(newArticleRes(article))
		},
	)

	g.Delete(
		"/:id", invalidate, func(c *fiber.Ctx) error {
			id, ok := parseArticleID(c)
			if !ok {
				return sendError(c, fiber.StatusNotFound, msgArticleNotFound)
			}
			if err := service.Delete(c.UserContext(), actorFromCtx(c), id); err != nil {
				return respondError(c, err, "Failed to delete article")
			}
			return c.JSON(fiber.Map{"message": "Article deleted successfully"})
		},
	)

	g.Post(
		"/:id/summarize", invalidate, func(c *fiber.Ctx) error {
			id, ok := parseArticleID(c)
			if !ok {
				return sendError(c, fiber.StatusNotFound, msgArticleNotFound)
			}
			summary, err := service.Summarize(c.UserContext(), actorFromCtx(c), id)
			if err != nil {
				return respondError(c, err, "Failed to generate summary")
			}
			return c.JSON(fiber.Map{"summary": summary})
		},
	)
}
