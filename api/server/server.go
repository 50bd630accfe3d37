// Package server wires the research handlers into an HTTP server with
// CORS and request logging middleware.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/NoobProgrammer008/ai-agent-scraper/agent"
	"github.com/NoobProgrammer008/ai-agent-scraper/api/handlers"
	"github.com/NoobProgrammer008/ai-agent-scraper/insights"
	"github.com/NoobProgrammer008/ai-agent-scraper/internal/config"
)

// Server hosts the research API.
type Server struct {
	router *mux.Router
	http   *http.Server
	logger *log.Logger
}

// New builds the server around an already-configured agent. summarizer
// may be nil.
func New(cfg *config.Config, a *agent.Agent, summarizer insights.Summarizer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
	}
	s.setupRoutes(a, summarizer)

	s.http = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	return s
}

func (s *Server) setupRoutes(a *agent.Agent, summarizer insights.Summarizer) {
	h := handlers.NewResearchHandler(a, summarizer, s.logger)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.corsMiddleware)

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api.HandleFunc("/research", h.Research).Methods(http.MethodPost)
	api.HandleFunc("/research/stream", h.Stream).Methods(http.MethodGet)
	api.HandleFunc("/research/history", h.History).Methods(http.MethodGet)
	api.HandleFunc("/research/history", h.ClearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/research/summary", h.Summary).Methods(http.MethodGet)
	api.HandleFunc("/research/export", h.Export).Methods(http.MethodGet)
	api.HandleFunc("/research/insights", h.Insights).Methods(http.MethodGet)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info("starting research API server", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.http.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
