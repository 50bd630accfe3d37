package crypto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

func newTestScraper(t *testing.T, handler http.HandlerFunc) (*Scraper, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := scrapers.NewClient(scrapers.ClientConfig{Timeout: 2 * time.Second, MaxRetries: 0})
	return New(client, srv.URL, nil), srv
}

func quoteHandler(t *testing.T, wantID string, quote map[string]float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, wantID, r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))

		json.NewEncoder(w).Encode(map[string]map[string]float64{wantID: quote})
	}
}

func TestFetchPrices(t *testing.T) {
	s, _ := newTestScraper(t, quoteHandler(t, "bitcoin", map[string]float64{
		"usd":            45000,
		"usd_market_cap": 882000000000,
		"usd_24h_vol":    21000000000,
		"usd_24h_change": 2.5,
	}))

	data, err := s.FetchPrices(context.Background(), []string{"bitcoin"})
	require.NoError(t, err)

	result, ok := data["bitcoin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BITCOIN", result["crypto_id"])
	assert.Equal(t, "$45,000.00", result["price_usd"])
	assert.Equal(t, "$882,000,000,000", result["market_cap_usd"])
	assert.Equal(t, "2.50%", result["24h_change_percent"])
	assert.Equal(t, "CoinGecko API", result["source"])
	assert.Equal(t, true, result["success"])
}

func TestFetchPricesSynonyms(t *testing.T) {
	s, _ := newTestScraper(t, quoteHandler(t, "ethereum", map[string]float64{"usd": 2500}))

	data, err := s.FetchPrices(context.Background(), []string{"what is ETH worth"})
	require.NoError(t, err)

	result := data["what is ETH worth"].(map[string]any)
	assert.Equal(t, "ETHEREUM", result["crypto_id"])
}

func TestFetchPricesDefaultsToBitcoin(t *testing.T) {
	s, _ := newTestScraper(t, quoteHandler(t, "bitcoin", map[string]float64{"usd": 45000}))

	data, err := s.FetchPrices(context.Background(), []string{"some unknown coin"})
	require.NoError(t, err)

	result := data["some unknown coin"].(map[string]any)
	assert.Equal(t, "BITCOIN", result["crypto_id"])
}

func TestFetchPricesServerError(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	data, err := s.FetchPrices(context.Background(), []string{"bitcoin"})
	require.NoError(t, err)

	// Per-query failures are embedded, not returned as a batch error.
	result := data["bitcoin"].(map[string]any)
	assert.Equal(t, false, result["success"])
	assert.NotEmpty(t, result["error"])
}

func TestFetchPricesNoQueries(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := s.FetchPrices(context.Background(), nil)
	assert.Error(t, err)
}

func TestCapabilityTag(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, "crypto", s.Name())
	assert.Equal(t, scrapers.CapabilityPrices, s.Capability())
}
