package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Update applies partial changes to an employee record.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Employee, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.employees.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	if input.Phone != nil {
		current.Phone = input.Phone
	}
	if input.Role != nil {
		current.Role = *input.Role
	}
	if input.Department != nil {
		current.Department = *input.Department
	}
	if input.ManagerID != nil {
		current.ManagerID = input.ManagerID
	}
	if input.Status != nil {
		current.Status = *input.Status
	}

	updated, err := s.employees.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	s.log.InfoContext(ctx, "employee updated",
		slog.String("employee_id", updated.ID.String()),
		slog.String("by", actor.ID.String()),
	)

	return updated, nil
}
