// Package api provides the read-only HTTP JSON API over the filings store.
//
// It exposes the full analysis report, the data summary, metric trends, the
// health score, stored filing summaries, and full-text search.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/report"
	"github.com/avikram/filingscope/internal/search"
	"github.com/avikram/filingscope/internal/store"
	"github.com/avikram/filingscope/pkg/models"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	store   store.Store
	builder *report.Builder
	engine  *search.Engine
	version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, st store.Store) *Server {
	srv := &Server{
		cfg:     cfg,
		store:   st,
		builder: report.NewBuilder(st, cfg.Company),
		engine:  search.NewEngine(st, cfg.Search),
		version: "dev",
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetVersion sets the version string reported by /health.
func (s *Server) SetVersion(version string) {
	s.version = version
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully on
// SIGINT or SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("api server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/report", s.handleReport)
		r.Get("/summary", s.handleSummary)
		r.Get("/trends", s.handleTrends)
		r.Get("/health-score", s.handleHealthScore)
		r.Get("/filings", s.handleFilings)
		r.Get("/search", s.handleSearch)
		r.Get("/config", s.handleGetConfig)
	})

	return r
}

// ============================================================
// Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	if hc, ok := s.store.(interface{ Health(context.Context) error }); ok {
		if err := hc.Health(r.Context()); err != nil {
			storeStatus = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.version,
			"company": s.cfg.Company.Ticker,
			"store":   storeStatus,
		},
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.builder.Build(r.Context()),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.builder.Summary(r.Context()),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.builder.Trends(r.Context()),
	})
}

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.builder.HealthScore(r.Context()),
	})
}

func (s *Server) handleFilings(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]models.FilingSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, rec.FilingSummary)
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    summaries,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	opts := search.Options{
		FormTypes:     splitForms(r.URL.Query().Get("forms")),
		CaseSensitive: queryBool(r, "case_sensitive"),
		WholeWords:    queryBool(r, "whole_words"),
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.engine.Search(r.Context(), query, opts),
	})
}

// ============================================================
// Helpers
// ============================================================

func splitForms(raw string) []string {
	if raw == "" {
		return nil
	}
	var forms []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			forms = append(forms, f)
		}
	}
	return forms
}

func queryBool(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "1" || strings.EqualFold(v, "true")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writing json response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
