// Package server exposes the database and the estimator over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
)

// Server serves the JSON API. Create it with New.
type Server struct {
	db                *epicdb.DB
	defaultDesignLife float64
	timeout           time.Duration
}

// Option configures optional server parameters.
type Option func(s *Server)

// WithDefaultDesignLife sets the design life in years applied to
// documents that do not set one.
func WithDefaultDesignLife(years float64) Option {
	return func(s *Server) {
		s.defaultDesignLife = years
	}
}

// WithTimeout bounds the handling of a single request.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.timeout = timeout
	}
}

// New creates a server over a loaded database.
func New(db *epicdb.DB, opts ...Option) *Server {
	s := &Server{
		db:                db,
		defaultDesignLife: epic.DefaultDesignLife,
		timeout:           30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the route table of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/categories", s.handleCategories)
	mux.HandleFunc("GET /api/v1/materials", s.handleMaterials)
	mux.HandleFunc("GET /api/v1/materials/{id}", s.handleMaterial)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("POST /api/v1/estimate", s.handleEstimate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return logRequests(mux)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"database":   epicdb.Version,
		"categories": s.db.Categories(),
	})
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var materials []epic.Material
	switch {
	case query.Get("q") != "":
		materials = s.db.Search(query.Get("q"), limit)
	case query.Get("category") != "":
		var err error
		materials, err = s.db.Materials(query.Get("category"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
	default:
		materials = s.db.All()
	}

	if limit > 0 && limit < len(materials) {
		materials = materials[:limit]
	}

	writeJSON(w, http.StatusOK, materials)
}

func (s *Server) handleMaterial(w http.ResponseWriter, r *http.Request) {
	material, err := s.db.Material(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, material)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"version":  epic.Version,
		"database": epicdb.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		slog.Info("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func isBodyTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes)
}
