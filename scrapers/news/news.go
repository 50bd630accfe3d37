// Package news fetches recent articles from NewsAPI.
package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

const maxContentLength = 500

// Scraper queries the NewsAPI "everything" endpoint. An API key is
// required; without one every fetch fails cleanly.
type Scraper struct {
	client   *scrapers.Client
	baseURL  string
	apiKey   string
	pageSize int
	logger   *log.Logger
}

// New creates a NewsAPI scraper. baseURL should point at the v2 API root,
// e.g. https://newsapi.org/v2.
func New(client *scrapers.Client, baseURL, apiKey string, pageSize int, logger *log.Logger) *Scraper {
	if logger == nil {
		logger = log.Default()
	}
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Scraper{
		client:   client,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (s *Scraper) Name() string { return "news" }

func (s *Scraper) Capability() scrapers.Capability { return scrapers.CapabilityArticle }

type apiResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// FetchArticle fetches the most recent English articles for the query and
// normalizes them to the shape the formatter understands.
func (s *Scraper) FetchArticle(ctx context.Context, query string) (map[string]any, error) {
	if !scrapers.ValidateQuery(query) {
		return nil, errors.New("invalid query")
	}
	if s.apiKey == "" {
		return nil, errors.New("news API key not configured")
	}

	params := url.Values{
		"q":        {query},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
		"pageSize": {strconv.Itoa(s.pageSize)},
		"apiKey":   {s.apiKey},
	}

	s.logger.Debug("fetching news", "query", query)

	var payload apiResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/everything", params, &payload); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	if payload.Status == "error" {
		return nil, fmt.Errorf("newsapi: %s", payload.Message)
	}

	articles := make([]map[string]any, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if !validArticle(a) {
			continue
		}
		content := a.Content
		if len(content) > maxContentLength {
			content = content[:maxContentLength]
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, map[string]any{
			"title":        a.Title,
			"description":  a.Description,
			"content":      content,
			"source":       source,
			"author":       a.Author,
			"url":          a.URL,
			"published_at": a.PublishedAt,
			"image_url":    a.URLToImage,
		})
	}

	s.logger.Debug("parsed articles", "query", query, "count", len(articles))

	return map[string]any{
		"articles":      articles,
		"total_results": len(articles),
		"source":        "NewsAPI",
		"success":       true,
	}, nil
}

// validArticle drops entries missing a title or URL, or carrying no text
// at all.
func validArticle(a apiArticle) bool {
	if a.Title == "" || a.URL == "" {
		return false
	}
	return a.Description != "" || a.Content != ""
}
