package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Create hires a new employee.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Employee, error) {
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

	now := time.Now().UTC()
	created, err := s.employees.Create(ctx, &domain.Employee{
		ID:         uuid.New(),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:      input.Phone,
		Role:       input.Role,
		Department: input.Department,
		Status:     domain.EmploymentActive,
		ManagerID:  input.ManagerID,
		HireDate:   input.HireDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.log.InfoContext(ctx, "employee created",
		slog.String("employee_id", created.ID.String()),
		slog.String("department", created.Department.String()),
		slog.String("by", actor.ID.String()),
	)

	return created, nil
}
