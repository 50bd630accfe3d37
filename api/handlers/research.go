// Package handlers implements the HTTP handlers for the research API.
package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/NoobProgrammer008/ai-agent-scraper/agent"
	"github.com/NoobProgrammer008/ai-agent-scraper/insights"
)

// APIResponse is the JSON envelope for non-streaming responses.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResearchRequest is the body of POST /research.
type ResearchRequest struct {
	Task string `json:"task"`
}

// ResearchHandler serves the research endpoints on top of the agent's
// four operations.
type ResearchHandler struct {
	agent      *agent.Agent
	summarizer insights.Summarizer
	logger     *log.Logger
}

// NewResearchHandler creates a handler. summarizer may be nil, which
// disables the insights endpoint.
func NewResearchHandler(a *agent.Agent, summarizer insights.Summarizer, logger *log.Logger) *ResearchHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ResearchHandler{
		agent:      a,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Research handles POST /research. The agent's result is returned as-is;
// a failed run is still a 200 with success=false in the result.
func (h *ResearchHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	result := h.agent.Run(r.Context(), req.Task)
	h.writeJSON(w, http.StatusOK, result)
}

// Stream handles GET /research/stream?task=... as Server-Sent Events.
// Each run event is one data: line; the stream ends with [DONE].
func (h *ResearchHandler) Stream(w http.ResponseWriter, r *http.Request) {
	task := r.URL.Query().Get("task")
	if task == "" {
		h.writeError(w, http.StatusBadRequest, "task query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for ev := range h.agent.RunStream(r.Context(), task) {
		data, err := json.Marshal(ev)
		if err != nil {
			h.logger.Error("failed to marshal stream event", "error", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// History handles GET /research/history.
func (h *ResearchHandler) History(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    h.agent.History(),
	})
}

// ClearHistory handles DELETE /research/history.
func (h *ResearchHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.agent.ClearHistory()
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]any{"message": "Research history cleared"},
	})
}

// Summary handles GET /research/summary.
func (h *ResearchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    h.agent.Summary(),
	})
}

// Export handles GET /research/export, returning the history as a CSV
// download.
func (h *ResearchHandler) Export(w http.ResponseWriter, r *http.Request) {
	history := h.agent.History()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="research_history.csv"`)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"index", "task", "query", "success", "error", "analysis"}); err != nil {
		h.logger.Error("failed to write CSV header", "error", err)
		return
	}
	for i, res := range history {
		row := []string{
			strconv.Itoa(i),
			res.Task,
			res.Query,
			strconv.FormatBool(res.Success),
			res.Error,
			res.Analysis,
		}
		if err := cw.Write(row); err != nil {
			h.logger.Error("failed to write CSV row", "index", i, "error", err)
			return
		}
	}
}

// Insights handles GET /research/insights. Without a configured
// summarizer it returns 503.
func (h *ResearchHandler) Insights(w http.ResponseWriter, r *http.Request) {
	if h.summarizer == nil {
		h.writeError(w, http.StatusServiceUnavailable, "Insights are not configured (missing OpenAI API key)")
		return
	}

	narrative, err := h.summarizer.Summarize(r.Context(), h.agent.History())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate insights: %v", err))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]any{"insights": narrative},
	})
}

// Health handles GET /health.
func (h *ResearchHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":     "healthy",
			"connectors": h.agent.Connectors(),
		},
	})
}

func (h *ResearchHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *ResearchHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, APIResponse{Success: false, Error: message})
}
