package hubapi

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub/cache"
)

// articleCacheInvalidationMiddleware evicts the cached article response for
// requests that successfully modified the article in the route.
// It should be attached only to non-GET routes.
func articleCacheInvalidationMiddleware(responseCache cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status >= 400 {
			return nil
		}
		id, ok := parseArticleID(c)
		if !ok {
			return nil
		}
		key := articleCacheKey(id)
		if err := responseCache.Delete(c.UserContext(), key); err != nil {
			log.WithError(err).WithField("key", key).Warn("could not evict article from cache")
		}
		return nil
	}
}
