// Package server exposes the style advisor over a JSON HTTP API consumed by
// the browser front end.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stylescout/stylescout/internal/llm"
	"github.com/stylescout/stylescout/internal/playground"
	"github.com/stylescout/stylescout/internal/storage"
)

const (
	// maxUploadBytes caps the uploaded photo size.
	maxUploadBytes = 15 << 20
)

// Server wires the analysis client, preview generator, playground sessions,
// and persistence behind HTTP handlers.
type Server struct {
	analyzer  llm.Analyzer
	generator llm.PreviewGenerator
	sessions  *playground.Store
	store     storage.Store
	fetcher   *ImageFetcher
}

// New creates a Server. The fetcher may be nil, which disables analyze-by-URL.
func New(analyzer llm.Analyzer, generator llm.PreviewGenerator, sessions *playground.Store, store storage.Store, fetcher *ImageFetcher) *Server {
	return &Server{
		analyzer:  analyzer,
		generator: generator,
		sessions:  sessions,
		store:     store,
		fetcher:   fetcher,
	}
}

// Handler returns the routed HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/select", s.handleSelect)
	mux.HandleFunc("POST /api/sessions/{id}/view", s.handleViewMode)
	mux.HandleFunc("POST /api/sessions/{id}/visualize", s.handleVisualize)
	mux.HandleFunc("POST /api/sessions/{id}/slider", s.handleSlider)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /api/previews/{id}/download", s.handleDownload)

	return withRequestLog(mux)
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
