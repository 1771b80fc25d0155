package recruiting

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// AddCandidateInput holds the parameters for registering an applicant.
type AddCandidateInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       *string
	Position    string
	RecruiterID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i AddCandidateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.FirstName) == "" {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "required"})
	}
	if strings.TrimSpace(i.LastName) == "" {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "required"})
	}
	if !strings.Contains(i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid address"})
	}
	if strings.TrimSpace(i.Position) == "" {
		errs = append(errs, domain.FieldError{Field: "position", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AdvanceStageInput moves a candidate to another pipeline stage.
type AdvanceStageInput struct {
	CandidateID uuid.UUID
	Stage       domain.PipelineStage
}

// Validate checks all fields and collects all errors.
func (i AdvanceStageInput) Validate() error {
	var errs []domain.FieldError

	if i.CandidateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "candidate_id", Message: "required"})
	}
	if !i.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "unknown stage"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddNoteInput attaches a note to a candidate.
type AddNoteInput struct {
	CandidateID uuid.UUID
	Text        string
}

// Validate checks all fields and collects all errors.
func (i AddNoteInput) Validate() error {
	var errs []domain.FieldError

	if i.CandidateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "candidate_id", Message: "required"})
	}
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
