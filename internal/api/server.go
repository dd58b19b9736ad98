package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dgallion1/brevity/internal/config"
	"github.com/dgallion1/brevity/internal/llm"
	"github.com/dgallion1/brevity/internal/ratelimit"
	"github.com/dgallion1/brevity/internal/summarize"
	"github.com/dgallion1/brevity/internal/telemetry"
)

// Server is the HTTP API for the summarization service.
type Server struct {
	router    chi.Router
	pipeline  *summarize.Pipeline
	llmStats  *llm.Stats
	telemetry *telemetry.Store
	limiter   *ratelimit.Limiter
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server. llmStats may be nil when
// the completion client doesn't collect latencies (tests).
func NewServer(pipeline *summarize.Pipeline, llmStats *llm.Stats, store *telemetry.Store, limiter *ratelimit.Limiter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline:  pipeline,
		llmStats:  llmStats,
		telemetry: store,
		limiter:   limiter,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(s.corsOptions()))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}
		r.Use(RateLimit(s.limiter))

		r.Post("/api/summarize", s.handleSummarize)
		r.Post("/api/summarize/document", s.handleSummarizeDocument)

		r.Post("/api/ping", s.handlePing)
		r.Get("/api/stats", s.handleStats)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

// corsOptions locks the API to the configured extension origin in
// production; with no origin configured it stays open for development.
func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.ExtOrigin != "" {
		opts.AllowedOrigins = []string{s.cfg.ExtOrigin}
		opts.AllowCredentials = true
	}
	return opts
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"model":  s.cfg.OpenAIModel,
	})
}
