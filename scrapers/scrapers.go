// Package scrapers defines the connector contract shared by all data
// sources. A connector declares exactly one capability and implements the
// matching fetch interface; the agent dispatches on the capability tag.
package scrapers

import (
	"context"
	"strings"
)

// Capability identifies the single fetch operation a connector supports.
type Capability string

const (
	CapabilityPrices  Capability = "prices"
	CapabilityArticle Capability = "article"
	CapabilityGeneral Capability = "general"
)

// Connector is the minimal surface every data source exposes.
type Connector interface {
	Name() string
	Capability() Capability
}

// PriceFetcher fetches cryptocurrency quotes for a list of queries.
type PriceFetcher interface {
	Connector
	FetchPrices(ctx context.Context, queries []string) (map[string]any, error)
}

// ArticleFetcher fetches news articles matching a query.
type ArticleFetcher interface {
	Connector
	FetchArticle(ctx context.Context, query string) (map[string]any, error)
}

// GeneralFetcher fetches encyclopedic information about a topic.
type GeneralFetcher interface {
	Connector
	FetchGeneral(ctx context.Context, query string) (map[string]any, error)
}

// ValidateQuery rejects empty or whitespace-only queries before any
// outbound request is made.
func ValidateQuery(query string) bool {
	return strings.TrimSpace(query) != ""
}
