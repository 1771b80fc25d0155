package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee represents a member of staff, current or former.
type Employee struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	Role            Role
	Department      Department
	Status          EmploymentStatus
	ManagerID       *uuid.UUID
	HireDate        time.Time
	TerminationDate *time.Time
	PTOBalanceDays  float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsActive reports whether the employee currently works here.
func (e *Employee) IsActive() bool {
	return e.Status == EmploymentActive || e.Status == EmploymentOnLeave
}

// Actor is the authenticated principal attached to an inbound request.
// It is a projection of an Employee, built by the auth middleware.
type Actor struct {
	ID         uuid.UUID
	Role       Role
	Department Department
	Status     EmploymentStatus
	FirstName  string
	LastName   string
}

// FullName returns the actor's display name.
func (a Actor) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// IsValid reports whether the actor context is well-formed enough to
// dispatch on: it must carry an ID and a known role.
func (a Actor) IsValid() bool {
	return a.ID != uuid.Nil && a.Role.IsValid()
}

// ActorFromEmployee builds the dispatch principal from an employee record.
func ActorFromEmployee(e *Employee) Actor {
	return Actor{
		ID:         e.ID,
		Role:       e.Role,
		Department: e.Department,
		Status:     e.Status,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
	}
}

// Account holds login credentials for an employee.
type Account struct {
	EmployeeID   uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
