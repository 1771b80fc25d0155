package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Roof-ER21/roof-hr-sub000/internal/transport/middleware"
)

// sweepService defines the minimal interface needed by OpsHandler.
type sweepService interface {
	Busy() bool
	RunOnce(ctx context.Context) bool
}

// OpsHandler serves operational endpoints for HR administrators.
type OpsHandler struct {
	sweep sweepService
	log   *slog.Logger
}

// NewOpsHandler creates an OpsHandler.
func NewOpsHandler(sweep sweepService, logger *slog.Logger) *OpsHandler {
	return &OpsHandler{sweep: sweep, log: logger.With("handler", "ops")}
}

// SweepStatus reports whether a sweep pass is running.
// GET /api/ops/sweep
func (h *OpsHandler) SweepStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireManager(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"busy": h.sweep.Busy()})
}

// SweepRun triggers one sweep pass out of schedule. Responds 409 when a
// pass is already running.
// POST /api/ops/sweep/run
func (h *OpsHandler) SweepRun(w http.ResponseWriter, r *http.Request) {
	if !h.requireManager(w, r) {
		return
	}

	if !h.sweep.RunOnce(r.Context()) {
		writeError(w, http.StatusConflict, "sweep already running")
		return
	}

	h.log.InfoContext(r.Context(), "manual sweep pass completed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *OpsHandler) requireManager(w http.ResponseWriter, r *http.Request) bool {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !actor.CanManageTeam() {
		writeError(w, http.StatusForbidden, "manager access required")
		return false
	}
	return true
}
