package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NoobProgrammer008/ai-agent-scraper/api/server"
	"github.com/NoobProgrammer008/ai-agent-scraper/internal/app"
	"github.com/NoobProgrammer008/ai-agent-scraper/internal/config"
)

func main() {
	configFile := os.Getenv("SCRAPER_CONFIG")

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           app.ParseLogLevel(cfg.LogLevel),
	})

	agent := app.BuildAgent(cfg, logger)
	summarizer := app.BuildSummarizer(cfg, logger)

	srv := server.New(cfg, agent, summarizer, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	if configFile != "" {
		logger.Info("configuration loaded", "file", configFile)
	}

	if err := srv.Start(); err != nil {
		logger.Fatal("server failed", "error", err)
	}

	logger.Info("server stopped")
}
