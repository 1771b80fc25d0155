package pto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// RequestInput holds the parameters for a new time-off request.
// EmployeeID defaults to the acting employee when zero.
type RequestInput struct {
	EmployeeID uuid.UUID
	Type       domain.PTOType
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
}

// Validate checks all fields and collects all errors.
func (i RequestInput) Validate() error {
	var errs []domain.FieldError

	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown type"})
	}
	if i.StartDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_date", Message: "required"})
	}
	if i.EndDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "required"})
	}
	if !i.StartDate.IsZero() && !i.EndDate.IsZero() && i.EndDate.Before(i.StartDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not precede start_date"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DecideInput approves or denies a pending request.
type DecideInput struct {
	RequestID uuid.UUID
	Approve   bool
}

// Validate checks all fields and collects all errors.
func (i DecideInput) Validate() error {
	if i.RequestID == uuid.Nil {
		return &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "request_id", Message: "required"},
		}}
	}
	return nil
}
