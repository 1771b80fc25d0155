package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a piece of company equipment tracked against employees
// (ladders, tablets, sample boards, vehicle keys).
type Tool struct {
	ID         uuid.UUID
	Name       string
	AssetTag   string
	Status     ToolStatus
	AssignedTo *uuid.UUID
	AssignedAt *time.Time
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAssignable reports whether the tool can be handed to an employee.
func (t *Tool) IsAssignable() bool {
	return t.Status == ToolAvailable
}
