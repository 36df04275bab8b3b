// Package knowledgehub assembles the http server of the knowledge hub.
package knowledgehub

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub/api/hubapi"
	"github.com/knowledgehub/knowledgehub/articles"
	"github.com/knowledgehub/knowledgehub/auth"
	"github.com/knowledgehub/knowledgehub/cache"
	"github.com/knowledgehub/knowledgehub/internal/version"
	"github.com/knowledgehub/knowledgehub/storage/model"
)

// HeaderVersion is the response header carrying the server version
const HeaderVersion = "X-Knowledgehub-Version"

const accessLogFormat = "${time} | ${locals:requestid} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n"

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   60 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   hubapi.ErrorHandler,
	Network:        "tcp",
}

// KnowledgeHub is the knowledge hub http server
type KnowledgeHub struct {
	server     *fiber.App
	serverConf ServerConf
}

// Options holds the optional parts of a KnowledgeHub
type Options struct {
	// AccessLog receives the access log; nil disables access logging
	AccessLog io.Writer
	// API is passed to the api registration
	API *hubapi.Options
}

// NewKnowledgeHub creates a new KnowledgeHub
func NewKnowledgeHub(
	serverConf ServerConf,
	storages model.Backends,
	service *articles.Service,
	tokens *auth.TokenIssuer,
	responseCache cache.Cache,
	opts Options,
) (*KnowledgeHub, error) {
	fiberConf := FiberServerConfig
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		fiberConf.TrustedProxies = tps
		fiberConf.EnableTrustedProxyCheck = true
	}
	fiberConf.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(fiberConf)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(
		requestid.New(
			requestid.Config{
				Generator: uuid.NewString,
			},
		),
	)
	if opts.AccessLog != nil {
		server.Use(
			logger.New(
				logger.Config{
					Format: accessLogFormat,
					Output: opts.AccessLog,
				},
			),
		)
	}
	server.Use(cors.New())

	server.Get(
		"/", func(c *fiber.Ctx) error {
			c.Set(HeaderVersion, version.VERSION)
			return c.SendString("Knowledge Hub API running")
		},
	)
	if err := hubapi.Register(server, storages, service, tokens, responseCache, opts.API); err != nil {
		return nil, err
	}
	return &KnowledgeHub{
		server:     server,
		serverConf: serverConf,
	}, nil
}

// Test passes req to the fiber app; see fiber.App.Test
func (hub KnowledgeHub) Test(req *http.Request, msTimeout ...int) (*http.Response, error) {
	return hub.server.Test(req, msTimeout...)
}

// Shutdown gracefully shuts down the server
func (hub KnowledgeHub) Shutdown() error {
	return hub.server.Shutdown()
}

// Start starts the server as configured and blocks until it is shut down
func (hub KnowledgeHub) Start() error {
	conf := hub.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		return hub.server.Listen(fmt.Sprintf("%s:%d", conf.IPListen, conf.Port))
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(fmt.Sprintf("%s:80", conf.IPListen))).Error("redirect server stopped")
		}()
	}
	port := conf.Port
	if port == 0 {
		port = 443
	}
	log.WithField("port", port).Info("TLS enabled, starting https server")
	return hub.server.ListenTLS(fmt.Sprintf("%s:%d", conf.IPListen, port), conf.TLS.Cert, conf.TLS.Key)
}
