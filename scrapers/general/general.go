// Package general answers encyclopedic queries, first from a small local
// knowledge base and then from the Wikipedia page-summary API.
package general

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

// knowledgeBase holds curated entries served without a network round trip.
var knowledgeBase = map[string]map[string]any{
	"ai": {
		"title":        "Artificial Intelligence (AI)",
		"description":  "Artificial Intelligence is the simulation of human intelligence processes by computer systems. AI involves developing algorithms and models that enable machines to learn from data, recognize patterns, understand language, and make decisions without explicit human instruction.",
		"applications": []string{"Machine Learning", "Computer Vision", "Natural Language Processing", "Robotics"},
		"examples":     []string{"ChatGPT", "Tesla Autopilot", "Netflix Recommendations"},
	},
	"machine learning": {
		"title":        "Machine Learning (ML)",
		"description":  "Machine Learning is a subset of AI that enables computer systems to learn from experience without being explicitly programmed. ML algorithms process data to identify patterns and make predictions.",
		"types":        []string{"Supervised Learning", "Unsupervised Learning", "Reinforcement Learning"},
		"applications": []string{"Image Recognition", "Fraud Detection", "Recommendation Systems"},
	},
	"python": {
		"title":       "Python Programming Language",
		"description": "Python is a high-level programming language known for its simplicity and versatility. It has become the standard language for AI and data science.",
		"libraries":   []string{"NumPy", "Pandas", "TensorFlow", "PyTorch"},
		"use_cases":   []string{"Data Analysis", "Machine Learning", "Web Development"},
	},
}

// Scraper serves general-knowledge lookups.
type Scraper struct {
	client  *scrapers.Client
	baseURL string
	logger  *log.Logger
	topics  []string
}

// New creates a general-knowledge scraper. baseURL should point at the
// Wikipedia summary endpoint, e.g.
// https://en.wikipedia.org/api/rest_v1/page/summary.
func New(client *scrapers.Client, baseURL string, logger *log.Logger) *Scraper {
	if logger == nil {
		logger = log.Default()
	}
	topics := make([]string, 0, len(knowledgeBase))
	for topic := range knowledgeBase {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return &Scraper{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
		topics:  topics,
	}
}

func (s *Scraper) Name() string { return "general" }

func (s *Scraper) Capability() scrapers.Capability { return scrapers.CapabilityGeneral }

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// FetchGeneral checks the local knowledge base before falling back to
// Wikipedia.
func (s *Scraper) FetchGeneral(ctx context.Context, query string) (map[string]any, error) {
	if !scrapers.ValidateQuery(query) {
		return nil, errors.New("invalid query")
	}

	clean := strings.TrimSpace(strings.ToLower(query))
	clean = strings.NewReplacer(".", "", "?", "").Replace(clean)

	for _, topic := range s.topics {
		if strings.Contains(clean, topic) || strings.Contains(topic, clean) {
			s.logger.Debug("local knowledge base hit", "query", query, "topic", topic)
			return map[string]any{
				"query":   query,
				"info":    knowledgeBase[topic],
				"source":  "Local Database",
				"success": true,
			}, nil
		}
	}

	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	s.logger.Debug("fetching wikipedia summary", "title", title)

	var payload summaryResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/"+title, nil, &payload); err != nil {
		return nil, fmt.Errorf("wikipedia: %w", err)
	}
	if payload.Extract == "" && payload.Title == "" {
		return nil, errors.New("wikipedia: topic not found")
	}

	description := payload.Extract
	if description == "" {
		description = "No description available"
	}

	return map[string]any{
		"title":       payload.Title,
		"description": description,
		"source":      "Wikipedia API",
		"url":         payload.ContentURLs.Desktop.Page,
		"image_url":   payload.Thumbnail.Source,
		"success":     true,
	}, nil
}
