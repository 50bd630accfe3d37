// Package app assembles a fully wired research agent from configuration.
// Both binaries (the CLI and the API server) build the same stack.
package app

import (
	"github.com/charmbracelet/log"

	"github.com/NoobProgrammer008/ai-agent-scraper/agent"
	"github.com/NoobProgrammer008/ai-agent-scraper/insights"
	"github.com/NoobProgrammer008/ai-agent-scraper/internal/config"
	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers/crypto"
	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers/general"
	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers/news"
)

// BuildAgent creates the agent with the three default connectors
// registered: crypto, news, and general.
func BuildAgent(cfg *config.Config, logger *log.Logger) *agent.Agent {
	if logger == nil {
		logger = log.Default()
	}

	client := scrapers.NewClient(scrapers.ClientConfig{
		Timeout:    cfg.ScraperTimeout(),
		MaxRetries: cfg.Scraper.MaxRetries,
		UserAgent:  cfg.Scraper.UserAgent,
	})

	a := agent.New(logger)
	a.RegisterConnector("crypto", crypto.New(client, cfg.Crypto.BaseURL, logger))
	a.RegisterConnector("news", news.New(client, cfg.News.BaseURL, cfg.News.APIKey, cfg.News.PageSize, logger))
	a.RegisterConnector("general", general.New(client, cfg.General.BaseURL, logger))

	return a
}

// BuildSummarizer creates the optional insights summarizer. Returns nil
// when no OpenAI API key is configured.
func BuildSummarizer(cfg *config.Config, logger *log.Logger) insights.Summarizer {
	summarizer, err := insights.NewOpenAI(insights.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	})
	if err != nil {
		if logger != nil {
			logger.Debug("insights disabled", "reason", err)
		}
		return nil
	}
	return summarizer
}

// ParseLogLevel maps the config log level onto charmbracelet levels.
func ParseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
