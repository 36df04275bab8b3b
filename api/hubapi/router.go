// Package hubapi implements the HTTP API of the knowledge hub.
package hubapi

import (
	"embed"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/knowledgehub/knowledgehub/articles"
	"github.com/knowledgehub/knowledgehub/auth"
	"github.com/knowledgehub/knowledgehub/cache"
	"github.com/knowledgehub/knowledgehub/storage/model"
)

//go:embed openapi.yaml
var assets embed.FS

// DefaultArticleCacheLifetime is used when Options does not set a lifetime
const DefaultArticleCacheLifetime = time.Minute

// Options controls optional features of the API registration.
type Options struct {
	// ServerURL, if set, is advertised in the served OpenAPI document
	ServerURL string
	// ArticleCacheLifetime is how long single article responses are cached
	ArticleCacheLifetime time.Duration
}

// Register mounts all API routes on the provided router.
func Register(
	r fiber.Router, storages model.Backends, service *articles.Service, tokens *auth.TokenIssuer,
	responseCache cache.Cache, opts *Options,
) error {
	if storages.Users == nil {
		return errors.New("hubapi: users store is not set")
	}
	if service == nil || tokens == nil {
		return errors.New("hubapi: article service and token issuer are required")
	}
	if responseCache == nil {
		responseCache = cache.Noop{}
	}
	var serverURL string
	cacheLifetime := DefaultArticleCacheLifetime
	if opts != nil {
		serverURL = opts.ServerURL
		if opts.ArticleCacheLifetime > 0 {
			cacheLifetime = opts.ArticleCacheLifetime
		}
	}

	openapiRaw, err := assets.ReadFile("openapi.yaml")
	if err != nil {
		return errors.Wrap(err, "hubapi: failed to read openapi.yaml")
	}
	openapiData := updateOpenAPIServers(openapiRaw, serverURL)
	r.Get(
		"/openapi.yaml", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, "application/yaml")
			return c.Send(openapiData)
		},
	)

	bearer := bearerMiddleware(tokens)
	registerAuth(r, storages.Users, tokens)
	registerArticles(r, service, responseCache, cacheLifetime, bearer)
	registerUsers(r, storages.Users, bearer)
	return nil
}

func updateOpenAPIServers(doc []byte, serverURL string) []byte {
	if len(serverURL) == 0 {
		return doc
	}
	var full map[string]any
	if err := yaml.Unmarshal(doc, &full); err != nil {
		return doc
	}
	full["servers"] = []map[string]any{
		{
			"url":         serverURL,
			"description": "This instance",
		},
	}
	res, err := yaml.Marshal(full)
	if err != nil {
		return doc
	}
	return res
}
