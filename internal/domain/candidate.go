package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Candidate represents an applicant in the recruiting pipeline.
type Candidate struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Phone       *string
	Position    string
	Stage       PipelineStage
	RecruiterID *uuid.UUID
	AppliedAt   time.Time
	UpdatedAt   time.Time
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CanAdvanceTo reports whether a stage transition is allowed.
// Terminal stages (HIRED, REJECTED) cannot be left.
func (c *Candidate) CanAdvanceTo(next PipelineStage) bool {
	if !next.IsValid() {
		return false
	}
	switch c.Stage {
	case StageHired, StageRejected:
		return false
	}
	return next != c.Stage
}

// CandidateNote is a free-text note attached to a candidate.
type CandidateNote struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	AuthorID    uuid.UUID
	Text        string
	CreatedAt   time.Time
}
