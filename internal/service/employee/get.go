package employee

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Get returns a single employee. Any authenticated actor may look up
// their own record; reading other records requires a management role.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if actor.ID != id && !actor.CanManageEmployees() && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return emp, nil
}

// List returns employees matching the filter.
func (s *Service) List(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	emps, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return emps, nil
}
