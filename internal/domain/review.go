package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a scheduled or completed performance review.
type Review struct {
	ID           uuid.UUID
	EmployeeID   uuid.UUID
	ReviewerID   uuid.UUID
	Period       string // e.g. "2026-Q3"
	Status       ReviewStatus
	ScheduledFor time.Time
	CompletedAt  *time.Time
	Rating       *int // 1..5, set on completion
	Summary      *string
	CreatedAt    time.Time
}

// IsOverdue reports whether a scheduled review is past its date.
func (r *Review) IsOverdue(now time.Time) bool {
	return r.Status == ReviewScheduled && r.ScheduledFor.Before(now)
}
