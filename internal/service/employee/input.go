package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// CreateInput holds the parameters for hiring an employee.
type CreateInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Role       domain.Role
	Department domain.Department
	ManagerID  *uuid.UUID
	HireDate   time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
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
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "unknown role"})
	}
	if !i.Department.IsValid() {
		errs = append(errs, domain.FieldError{Field: "department", Message: "unknown department"})
	}
	if i.HireDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "hire_date", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the mutable fields of an employee record.
// Nil pointer fields are left unchanged.
type UpdateInput struct {
	EmployeeID uuid.UUID
	Phone      *string
	Role       *domain.Role
	Department *domain.Department
	ManagerID  *uuid.UUID
	Status     *domain.EmploymentStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}
	if i.Role != nil && !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "unknown role"})
	}
	if i.Department != nil && !i.Department.IsValid() {
		errs = append(errs, domain.FieldError{Field: "department", Message: "unknown department"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TerminateInput holds the parameters for terminating an employee.
type TerminateInput struct {
	EmployeeID    uuid.UUID
	EffectiveDate time.Time
}

// Validate checks all fields and collects all errors.
func (i TerminateInput) Validate() error {
	var errs []domain.FieldError

	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}
	if i.EffectiveDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "effective_date", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
