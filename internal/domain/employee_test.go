package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestEmployee_FullName(t *testing.T) {
	t.Parallel()

	e := &Employee{FirstName: "Sarah", LastName: "Chen"}
	if got := e.FullName(); got != "Sarah Chen" {
		t.Errorf("full name: got %q, want %q", got, "Sarah Chen")
	}

	single := &Employee{FirstName: "Cher"}
	if got := single.FullName(); got != "Cher" {
		t.Errorf("single name: got %q, want %q", got, "Cher")
	}
}

func TestEmployee_IsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status EmploymentStatus
		want   bool
	}{
		{EmploymentActive, true},
		{EmploymentOnLeave, true},
		{EmploymentTerminated, false},
	}
	for _, tt := range tests {
		e := &Employee{Status: tt.status}
		if got := e.IsActive(); got != tt.want {
			t.Errorf("IsActive(%s): got %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestActor_IsValid(t *testing.T) {
	t.Parallel()

	valid := Actor{ID: uuid.New(), Role: RoleEmployee}
	if !valid.IsValid() {
		t.Error("actor with ID and role should be valid")
	}

	noID := Actor{Role: RoleEmployee}
	if noID.IsValid() {
		t.Error("actor without ID should be invalid")
	}

	noRole := Actor{ID: uuid.New()}
	if noRole.IsValid() {
		t.Error("actor without role should be invalid")
	}

	badRole := Actor{ID: uuid.New(), Role: Role("WIZARD")}
	if badRole.IsValid() {
		t.Error("actor with unknown role should be invalid")
	}
}

func TestActorFromEmployee(t *testing.T) {
	t.Parallel()

	e := &Employee{
		ID:         uuid.New(),
		FirstName:  "Mike",
		LastName:   "Torres",
		Role:       RoleManager,
		Department: DepartmentProduction,
		Status:     EmploymentActive,
	}

	a := ActorFromEmployee(e)
	if a.ID != e.ID || a.Role != RoleManager || a.Department != DepartmentProduction {
		t.Errorf("actor projection mismatch: %+v", a)
	}
	if a.FullName() != "Mike Torres" {
		t.Errorf("full name: got %q", a.FullName())
	}
}
