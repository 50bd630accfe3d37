// Package crypto fetches live cryptocurrency quotes from the CoinGecko
// simple price API.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

const defaultAsset = "bitcoin"

// assetIDs maps common names and tickers to CoinGecko asset IDs. Kept as
// an ordered slice so substring matching is deterministic.
var assetIDs = []struct {
	keyword string
	id      string
}{
	{"bitcoin", "bitcoin"},
	{"btc", "bitcoin"},
	{"ethereum", "ethereum"},
	{"eth", "ethereum"},
	{"cardano", "cardano"},
	{"ada", "cardano"},
	{"ripple", "ripple"},
	{"xrp", "ripple"},
	{"solana", "solana"},
	{"sol", "solana"},
	{"litecoin", "litecoin"},
	{"ltc", "litecoin"},
	{"dogecoin", "dogecoin"},
	{"doge", "dogecoin"},
}

// Scraper fetches quotes for one or more assets per call.
type Scraper struct {
	client  *scrapers.Client
	baseURL string
	printer *message.Printer
	logger  *log.Logger
}

// New creates a CoinGecko scraper. baseURL should point at the API root,
// e.g. https://api.coingecko.com/api/v3.
func New(client *scrapers.Client, baseURL string, logger *log.Logger) *Scraper {
	if logger == nil {
		logger = log.Default()
	}
	return &Scraper{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
}

func (s *Scraper) Name() string { return "crypto" }

func (s *Scraper) Capability() scrapers.Capability { return scrapers.CapabilityPrices }

// FetchPrices fetches a quote per query. Individual failures are recorded
// in the result under the failing query rather than aborting the batch.
func (s *Scraper) FetchPrices(ctx context.Context, queries []string) (map[string]any, error) {
	if len(queries) == 0 {
		return nil, errors.New("no queries given")
	}

	results := make(map[string]any, len(queries))
	for _, query := range queries {
		data, err := s.fetch(ctx, query)
		if err != nil {
			s.logger.Error("crypto fetch failed", "query", query, "error", err)
			results[query] = map[string]any{"error": err.Error(), "success": false}
			continue
		}
		results[query] = data
	}
	return results, nil
}

func (s *Scraper) fetch(ctx context.Context, query string) (map[string]any, error) {
	if !scrapers.ValidateQuery(query) {
		return nil, errors.New("invalid query")
	}

	id := s.resolveAsset(query)

	params := url.Values{
		"ids":                 {id},
		"vs_currencies":       {"usd"},
		"include_market_cap":  {"true"},
		"include_24hr_vol":    {"true"},
		"include_24hr_change": {"true"},
	}

	s.logger.Debug("fetching quote", "asset", id)

	var payload map[string]map[string]float64
	if err := s.client.GetJSON(ctx, s.baseURL+"/simple/price", params, &payload); err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}

	quote, ok := payload[id]
	if !ok {
		return nil, fmt.Errorf("coingecko: no data for %q", id)
	}

	return map[string]any{
		"crypto_id":          strings.ToUpper(id),
		"price_usd":          s.printer.Sprintf("$%.2f", quote["usd"]),
		"market_cap_usd":     s.printer.Sprintf("$%.0f", quote["usd_market_cap"]),
		"24h_volume_usd":     s.printer.Sprintf("$%.0f", quote["usd_24h_vol"]),
		"24h_change_percent": fmt.Sprintf("%.2f%%", quote["usd_24h_change"]),
		"source":             "CoinGecko API",
		"success":            true,
	}, nil
}

// resolveAsset finds the first known keyword contained in the query.
// Unknown assets fall back to bitcoin, matching the upstream default.
func (s *Scraper) resolveAsset(query string) string {
	lower := strings.ToLower(query)
	for _, entry := range assetIDs {
		if strings.Contains(lower, entry.keyword) {
			return entry.id
		}
	}
	s.logger.Warn("unknown asset, defaulting", "query", query, "default", defaultAsset)
	return defaultAsset
}
