package domain

import "github.com/google/uuid"

// EmployeeFilter narrows employee listings. Nil fields are ignored.
type EmployeeFilter struct {
	Department *Department
	Status     *EmploymentStatus
	ManagerID  *uuid.UUID
	Role       *Role
}

// ActiveEmployees is the filter used when resolving names against staff:
// terminated employees are excluded from fuzzy matching.
func ActiveEmployees() EmployeeFilter {
	status := EmploymentActive
	return EmployeeFilter{Status: &status}
}
