package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Consequential actions are not executed on first sight: the dispatcher
// persists a PendingAction (Proposed) whose payload carries every field
// the executor needs, and echoes a confirmation id to the caller. A
// later confirm call walks the action through Confirmed to Executed.
// Expiry is checked at confirm time against the stored deadline.

// propose persists a pending action and shapes the needs-approval result.
func (s *Service) propose(ctx context.Context, actx ActionContext, kind, summary string, payload map[string]any) *ActionResult {
	raw, err := json.Marshal(payload)
	if err != nil {
		return failure("I couldn't stage that action.", err.Error())
	}

	now := time.Now().UTC()
	pa := &domain.PendingAction{
		ID:        uuid.New(),
		ActorID:   actx.Actor.ID,
		Kind:      kind,
		Payload:   raw,
		State:     domain.PendingProposed,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.ConfirmationTTL),
	}

	created, err := s.deps.Pending.Create(ctx, pa)
	if err != nil {
		s.log.ErrorContext(ctx, "persist pending action failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		return failure("I couldn't stage that action.", err.Error())
	}

	conf := map[string]any{
		"confirmation_id": created.ID.String(),
		"action":          kind,
		"expires_at":      created.ExpiresAt.Format(time.RFC3339),
	}
	for k, v := range payload {
		conf[k] = v
	}

	return &ActionResult{
		Success:              false,
		Message:              summary,
		RequiresConfirmation: true,
		ConfirmationData:     conf,
	}
}

// Confirm executes a previously proposed action. Only the proposing
// actor may confirm; a second confirm of the same id is rejected by the
// state-guarded transition, so every action runs at most once.
func (s *Service) Confirm(ctx context.Context, confirmationID uuid.UUID) ActionResult {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return *failure("I can't process that request.", "missing actor context")
	}

	pa, err := s.deps.Pending.GetByID(ctx, confirmationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return *failure("I couldn't find that pending action.", "unknown confirmation id")
		}
		return *failure("I couldn't load that pending action.", err.Error())
	}
	if pa.ActorID != actor.ID {
		return *failure("That pending action belongs to someone else.", "actor mismatch")
	}

	now := time.Now().UTC()
	if pa.IsExpired(now) {
		if err := s.deps.Pending.Transition(ctx, pa.ID, domain.PendingProposed, domain.PendingExpired); err != nil {
			s.log.WarnContext(ctx, "expire transition failed", slog.String("error", err.Error()))
		}
		return *failure("That confirmation has expired. Please start over.", "confirmation expired")
	}

	if err := s.deps.Pending.Transition(ctx, pa.ID, domain.PendingProposed, domain.PendingConfirmed); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return *failure("That action was already confirmed.", "already confirmed")
		}
		return *failure("I couldn't confirm that action.", err.Error())
	}

	exec, ok := s.executors()[pa.Kind]
	if !ok {
		return *failure("I don't know how to run that action.", fmt.Sprintf("no executor for kind %q", pa.Kind))
	}

	res := exec(ctx, pa.Payload)
	if res.Success {
		if err := s.deps.Pending.Transition(ctx, pa.ID, domain.PendingConfirmed, domain.PendingExecuted); err != nil {
			s.log.WarnContext(ctx, "executed transition failed", slog.String("error", err.Error()))
		}
	}

	s.log.InfoContext(ctx, "pending action confirmed",
		slog.String("confirmation_id", pa.ID.String()),
		slog.String("kind", pa.Kind),
		slog.Bool("success", res.Success),
	)

	return res
}

// confirmExecutor runs a stored payload with zero re-parsing.
type confirmExecutor func(ctx context.Context, payload []byte) ActionResult

// executors maps pending-action kinds to their payload executors.
func (s *Service) executors() map[string]confirmExecutor {
	return map[string]confirmExecutor{
		"employee.terminate": s.execTerminateEmployee,
		"tools.assign":       s.execAssignTool,
		"contract.issue":     s.execIssueContract,
		"review.bulk_create": s.execBulkReviews,
		"territory.assign":   s.execAssignTerritory,
	}
}
