package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/service/assistant"
	"github.com/Roof-ER21/roof-hr-sub000/internal/transport/middleware"
)

// assistantService defines the minimal interface needed by AssistantHandler.
type assistantService interface {
	Dispatch(ctx context.Context, actx assistant.ActionContext) []assistant.ActionResult
	Confirm(ctx context.Context, confirmationID uuid.UUID) assistant.ActionResult
}

// AssistantHandler serves the natural-language assistant endpoints.
type AssistantHandler struct {
	svc assistantService
	log *slog.Logger
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(svc assistantService, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{svc: svc, log: logger.With("handler", "assistant")}
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Results []assistant.ActionResult `json:"results"`
}

type confirmRequest struct {
	ConfirmationID string `json:"confirmation_id"`
}

// Message handles POST /api/assistant/message. The response always has
// status 200 with per-domain outcomes in the body; domain failures are
// results, not HTTP errors.
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	results := h.svc.Dispatch(r.Context(), assistant.ActionContext{
		Actor:   actor,
		Message: req.Message,
	})

	h.log.InfoContext(r.Context(), "message dispatched",
		slog.String("actor_id", actor.ID.String()),
		slog.Int("results", len(results)),
	)

	writeJSON(w, http.StatusOK, messageResponse{Results: results})
}

// Confirm handles POST /api/assistant/confirm.
func (h *AssistantHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireActor(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(req.ConfirmationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "confirmation_id must be a UUID")
		return
	}

	result := h.svc.Confirm(r.Context(), id)
	writeJSON(w, http.StatusOK, result)
}
