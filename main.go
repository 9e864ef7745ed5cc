package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyberstar-dev/soudan-bot/ai/assistant"
	"github.com/cyberstar-dev/soudan-bot/config"
	"github.com/cyberstar-dev/soudan-bot/database"
	"github.com/cyberstar-dev/soudan-bot/discord"
	"github.com/cyberstar-dev/soudan-bot/logging"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/persona"
	"github.com/cyberstar-dev/soudan-bot/router"
	"github.com/cyberstar-dev/soudan-bot/serpapi"
	"github.com/cyberstar-dev/soudan-bot/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), os.Stdout)
	logger.Info("starting bot", "model", cfg.Model)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// listen and serve for metrics server.
	server := metrics.SetupServer(cfg.MetricsAddr)
	go server.Run()

	db, err := database.NewPostgres(cfg.PostgresURL, logger.WithComponent("database"))
	if err != nil {
		log.Fatalln(err)
	}

	registry := persona.NewDefaultRegistry()
	if cfg.PersonaFile != "" {
		registry, err = persona.LoadFile(cfg.PersonaFile)
		if err != nil {
			log.Fatalln(err)
		}
		logger.Info("loaded persona registry", "file", cfg.PersonaFile)
	}

	bot, err := assistant.Setup(cfg, logger.WithComponent("assistant"))
	if err != nil {
		log.Fatalln(err)
	}

	searcher := serpapi.NewClient(cfg.SerpAPIKey, cfg.SearchLanguage)

	var summarySource router.SummarySource
	if cfg.SummaryInterval > 0 {
		svc := summary.NewService(db, bot, cfg.SummaryInterval, logger.WithComponent("summary"))
		summarySource = svc.Rolling()
		go func() {
			if err := svc.Start(ctx); err != nil && err != context.Canceled {
				logger.Error("summary service stopped", "error", err.Error())
			}
		}()
		logger.Info("summary job scheduled", "interval", cfg.SummaryInterval.String())
	}

	rt := router.New(registry, bot, searcher, db, summarySource, router.Options{
		SearchResultCount:  cfg.SearchResultCount,
		LLMTimeout:         cfg.LLMTimeout,
		SearchTimeout:      cfg.SearchTimeout,
		ClassifierFailOpen: cfg.ClassifierFailOpen,
	}, logger.WithComponent("router"))

	session, err := discord.Setup(cfg.DiscordToken, rt, db, logger.WithComponent("discord"))
	if err != nil {
		log.Fatalln(err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	logger.Info("bot is running, press Ctrl+C to exit")
	<-stop

	logger.Info("shutting down")
	cancel()
	if session.Session != nil {
		if err := session.Session.Close(); err != nil {
			logger.Error("error closing discord session", "error", err.Error())
		}
	}
	db.Close()
}
