package handlers

import (
	"database/sql"
	"net/http"

	"github.com/adaudit/adaudit/internal/pkg/utils"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db      *sql.DB
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Healthz reports process liveness
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Readyz reports readiness, checking the database connection
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			utils.WriteErrorMessage(w, http.StatusServiceUnavailable,
				"NOT_READY", "database unavailable")
			return
		}
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
