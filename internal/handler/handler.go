package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/gradeaid/gradeaid/internal/i18n"
	"github.com/gradeaid/gradeaid/internal/model"
	"github.com/gradeaid/gradeaid/internal/store"
)

// DefaultMaxUploadSize bounds request bodies when the config leaves it unset.
const DefaultMaxUploadSize = 10 << 20

// Analyzer produces an analysis of a paper's text. *llm.Client implements it.
type Analyzer interface {
	AnalyzePaper(ctx context.Context, subject, text string) (*model.AnalysisResult, error)
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	analyzer Analyzer
	config   model.ServerConfig
}

// New creates a new Handler.
func New(s *store.Store, a Analyzer, cfg model.ServerConfig) *Handler {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	return &Handler{store: s, analyzer: a, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Post("/api/score", h.handleScore)

		r.Get("/api/students", h.handleListStudents)
		r.Post("/api/students", h.handleCreateStudent)
		r.Get("/api/students/{studentID}/summary", h.handleStudentSummary)

		r.Get("/api/papers", h.handleListPapers)
		r.Post("/api/papers", h.handleCreatePaper)
		r.Get("/api/papers/{paperID}", h.handleGetPaper)
		r.Delete("/api/papers/{paperID}", h.handleDeletePaper)

		r.Get("/api/analytics", h.handleAnalytics)

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(requireRole(model.UserRoleAdmin))
			r.Get("/users", h.handleListUsers)
			r.Post("/users", h.handleCreateUser)
			r.Post("/users/{userID}/toggle", h.handleToggleUserActive)
		})
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": appI18n.T(r.Context(), "AppTitle")})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a JSON request body of at most the configured upload size.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body larger than %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}
