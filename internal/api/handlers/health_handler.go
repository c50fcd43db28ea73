package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/touristtalks/backend/internal/infrastructure/observability"
)

const pingTimeout = 3 * time.Second

// Pinger checks that a backing store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoints
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db: db,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// DBConnectivity handles GET /api/db_connectivity
func (h *HealthHandler) DBConnectivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("database ping failed")
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"ok": 1})
}

// ServerConnectivity handles GET /api/server_connectivity
func (h *HealthHandler) ServerConnectivity(w http.ResponseWriter, r *http.Request) {
	respondWithMessage(w, http.StatusOK, "API is working!")
}
