package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashureev/scaffolder/internal/store"
	"github.com/go-chi/chi/v5"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	repo  store.Repository
	poems Poems
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(repo store.Repository, poems Poems) *HealthHandler {
	return &HealthHandler{repo: repo, poems: poems}
}

type healthResponse struct {
	Status string            `json:"status"`
	Poems  int               `json:"poems"`
	Checks map[string]string `json:"checks"`
}

// Health returns the health status of the API and its dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status: "healthy",
		Poems:  h.poems.Len(),
		Checks: map[string]string{"api": "ok", "database": "ok", "catalog": "ok"},
	}
	statusCode := http.StatusOK

	if err := h.repo.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		resp.Status = "degraded"
		resp.Checks["database"] = "unreachable"
		statusCode = http.StatusServiceUnavailable
	}
	if resp.Poems == 0 {
		resp.Status = "degraded"
		resp.Checks["catalog"] = "empty"
	}

	JSON(w, statusCode, resp)
}

// RegisterHealth registers the health check route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}
