package domain

import (
	"time"

	"github.com/google/uuid"
)

// PendingState is the lifecycle of a proposed assistant action.
type PendingState string

const (
	PendingProposed  PendingState = "PROPOSED"
	PendingConfirmed PendingState = "CONFIRMED"
	PendingExecuted  PendingState = "EXECUTED"
	PendingExpired   PendingState = "EXPIRED"
)

func (s PendingState) String() string { return string(s) }

func (s PendingState) IsValid() bool {
	switch s {
	case PendingProposed, PendingConfirmed, PendingExecuted, PendingExpired:
		return true
	}
	return false
}

// PendingAction is an assistant action awaiting confirmation. The payload
// carries every field its executor needs, so confirming requires no
// further text parsing.
type PendingAction struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	Kind      string // e.g. "employee.terminate", "review.bulk_create"
	Payload   []byte // JSON, executor-specific
	State     PendingState
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the action's confirmation window has passed.
func (p *PendingAction) IsExpired(now time.Time) bool {
	return p.ExpiresAt.Before(now)
}

// CanTransition reports whether a state change is allowed.
// Proposed → Confirmed → Executed, with Expired reachable from Proposed.
func (p *PendingAction) CanTransition(next PendingState) bool {
	switch p.State {
	case PendingProposed:
		return next == PendingConfirmed || next == PendingExpired
	case PendingConfirmed:
		return next == PendingExecuted
	}
	return false
}
