package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub"
	"github.com/knowledgehub/knowledgehub/api/hubapi"
	"github.com/knowledgehub/knowledgehub/articles"
	"github.com/knowledgehub/knowledgehub/cache"
	"github.com/knowledgehub/knowledgehub/cmd/knowledgehub/config"
	"github.com/knowledgehub/knowledgehub/internal/logger"
	"github.com/knowledgehub/knowledgehub/internal/version"
	"github.com/knowledgehub/knowledgehub/summarizer"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	if err := logger.Init(c.Logging.Internal); err != nil {
		log.WithError(err).Fatal("could not init logger")
	}
	log.WithField("version", version.VERSION).Info("Loaded Config")

	warehouse, backs, err := config.LoadStorage(c.Storage)
	if err != nil {
		log.WithError(err).Fatal("could not load storage")
	}
	defer warehouse.Close()

	tokens, err := c.Auth.TokenIssuer(backs.KV)
	if err != nil {
		log.WithError(err).Fatal("could not init token issuer")
	}
	log.Info("Loaded token signing secret")

	s, err := summarizer.New(c.Summarizer.SummarizerConfig())
	if err != nil {
		log.WithError(err).Fatal("could not init summarizer")
	}
	log.WithField("provider", c.Summarizer.Provider).Info("Loaded summarizer")

	responseCache, err := cache.New(c.Caching.CacheConfig())
	if err != nil {
		log.WithError(err).Fatal("could not init cache")
	}
	defer responseCache.Close()
	log.WithField("backend", c.Caching.Backend).Info("Loaded cache")

	opts := knowledgehub.Options{
		API: &hubapi.Options{
			ServerURL:            c.API.ServerURL,
			ArticleCacheLifetime: c.Caching.MaxLifetime.Duration(),
		},
	}
	if !c.Logging.DisableAccessLog {
		opts.AccessLog, err = logger.AccessWriter(c.Logging.Access)
		if err != nil {
			log.WithError(err).Fatal("could not open access log")
		}
	}

	hub, err := knowledgehub.NewKnowledgeHub(
		c.Server, backs,
		articles.NewService(backs.Articles, s, c.Summarizer.Timeout.Duration()),
		tokens, responseCache, opts,
	)
	if err != nil {
		log.WithError(err).Fatal("could not init server")
	}
	log.Info("Added Endpoints")

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("Shutting down")
		if err := hub.Shutdown(); err != nil {
			log.WithError(err).Error("error during shutdown")
		}
	}()

	if err = hub.Start(); err != nil {
		log.WithError(err).Error("server stopped")
	}
}
