package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoobProgrammer008/ai-agent-scraper/agent"
	"github.com/NoobProgrammer008/ai-agent-scraper/api/server"
	"github.com/NoobProgrammer008/ai-agent-scraper/insights"
	"github.com/NoobProgrammer008/ai-agent-scraper/internal/config"
	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

type stubPrices struct{}

func (stubPrices) Name() string                    { return "crypto" }
func (stubPrices) Capability() scrapers.Capability { return scrapers.CapabilityPrices }
func (stubPrices) FetchPrices(ctx context.Context, queries []string) (map[string]any, error) {
	return map[string]any{"bitcoin": "$45,000", "source": "Demo Data"}, nil
}

type stubSummarizer struct {
	narrative string
	err       error
}

func (s stubSummarizer) Summarize(ctx context.Context, history []agent.ResearchResult) (string, error) {
	return s.narrative, s.err
}

func newTestServer(t *testing.T, summarizer *stubSummarizer) (*httptest.Server, *agent.Agent) {
	t.Helper()

	a := agent.New(nil)
	a.RegisterConnector("crypto", stubPrices{})

	var sum insights.Summarizer
	if summarizer != nil {
		sum = *summarizer
	}

	srv := server.New(config.DefaultConfig(), a, sum, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, a
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestResearchEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	body := bytes.NewBufferString(`{"task": "bitcoin price"}`)
	resp, err := http.Post(ts.URL+"/api/v1/research", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result agent.ResearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "bitcoin", result.Query)
	assert.NotEmpty(t, result.Analysis)
}

func TestResearchEndpointFailedRunIsStill200(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	body := bytes.NewBufferString(`{"task": "latest news"}`)
	resp, err := http.Post(ts.URL+"/api/v1/research", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result agent.ResearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, []string{"crypto"}, result.AvailableConnectors)
}

func TestResearchEndpointBadJSON(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/v1/research", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryAndClear(t *testing.T) {
	ts, a := newTestServer(t, nil)
	a.Run(context.Background(), "bitcoin")
	a.Run(context.Background(), "btc check")

	var envelope struct {
		Success bool                   `json:"success"`
		Data    []agent.ResearchResult `json:"data"`
	}
	getJSON(t, ts.URL+"/api/v1/research/history", &envelope)
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data, 2)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/research/history", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope.Data = nil
	getJSON(t, ts.URL+"/api/v1/research/history", &envelope)
	assert.Empty(t, envelope.Data)
}

func TestSummaryEndpoint(t *testing.T) {
	ts, a := newTestServer(t, nil)
	a.Run(context.Background(), "bitcoin")

	var envelope struct {
		Success bool                  `json:"success"`
		Data    agent.ResearchSummary `json:"data"`
	}
	getJSON(t, ts.URL+"/api/v1/research/summary", &envelope)

	assert.True(t, envelope.Success)
	assert.Equal(t, 1, envelope.Data.TotalResearch)
	assert.Equal(t, 1, envelope.Data.Successful)
	assert.Equal(t, []string{"bitcoin"}, envelope.Data.Queries)
}

func TestExportCSV(t *testing.T) {
	ts, a := newTestServer(t, nil)
	a.Run(context.Background(), "bitcoin")
	a.Run(context.Background(), "")

	resp, err := http.Get(ts.URL + "/api/v1/research/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "research_history.csv")

	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"index", "task", "query", "success", "error", "analysis"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "true", rows[1][3])
	assert.Equal(t, "false", rows[2][3])
}

func TestStreamEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/research/stream?task=bitcoin")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var payloads []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			payloads = append(payloads, strings.TrimPrefix(line, "data: "))
		}
	}
	require.NoError(t, scanner.Err())

	require.GreaterOrEqual(t, len(payloads), 2)
	assert.Equal(t, "[DONE]", payloads[len(payloads)-1])

	var final agent.Event
	require.NoError(t, json.Unmarshal([]byte(payloads[len(payloads)-2]), &final))
	assert.Equal(t, agent.EventCompleted, final.Type)
	require.NotNil(t, final.Result)
	assert.True(t, final.Result.Success)
}

func TestStreamEndpointRequiresTask(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/research/stream")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInsightsUnconfigured(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/research/insights")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestInsightsConfigured(t *testing.T) {
	ts, a := newTestServer(t, &stubSummarizer{narrative: "Research focused on crypto prices."})
	a.Run(context.Background(), "bitcoin")

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	resp := getJSON(t, ts.URL+"/api/v1/research/insights", &envelope)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Research focused on crypto prices.", envelope.Data["insights"])
}

func TestInsightsFailure(t *testing.T) {
	ts, _ := newTestServer(t, &stubSummarizer{err: errors.New("model unavailable")})

	resp, err := http.Get(ts.URL + "/api/v1/research/insights")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	getJSON(t, ts.URL+"/api/v1/health", &envelope)

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data["status"])
}

func TestCORSHeaders(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
