package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/HammerMeetNail/socialexplorer/internal/logging"
)

// Pinger is anything with a liveness check: the Postgres pool, the SQLite
// store, or Redis.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
	redis Pinger
}

// NewHealthHandler builds the health check handler. redis may be nil when Redis is
// disabled.
func NewHealthHandler(store Pinger, redis Pinger) *HealthHandler {
	return &HealthHandler{store: store, redis: redis}
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "alive"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if err := h.store.Health(ctx); err != nil {
		logging.Warn("Store readiness check failed", map[string]interface{}{"error": err.Error()})
		checks["store"] = "unavailable"
		ready = false
	} else {
		checks["store"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			logging.Warn("Redis readiness check failed", map[string]interface{}{"error": err.Error()})
			checks["redis"] = "unavailable"
			ready = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not ready", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready", Checks: checks})
}
