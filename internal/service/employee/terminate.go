package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Terminate marks an employee as terminated. If the employee still
// holds company tools, a collection reminder is sent to their manager;
// notification failures are logged and do not fail the termination.
func (s *Service) Terminate(ctx context.Context, input TerminateInput) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() {
		return domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return err
	}

	emp, err := s.employees.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return fmt.Errorf("load employee: %w", err)
	}
	if emp.Status == domain.EmploymentTerminated {
		return fmt.Errorf("employee %s: %w", emp.ID, domain.ErrConflict)
	}

	if err := s.employees.Terminate(ctx, input.EmployeeID, input.EffectiveDate); err != nil {
		return fmt.Errorf("terminate employee: %w", err)
	}

	s.log.InfoContext(ctx, "employee terminated",
		slog.String("employee_id", emp.ID.String()),
		slog.String("by", actor.ID.String()),
	)

	s.remindToolCollection(ctx, emp)
	return nil
}

func (s *Service) remindToolCollection(ctx context.Context, emp *domain.Employee) {
	held, err := s.tools.ListByHolder(ctx, emp.ID)
	if err != nil {
		s.log.WarnContext(ctx, "list held tools failed", slog.String("error", err.Error()))
		return
	}
	if len(held) == 0 || emp.ManagerID == nil {
		return
	}

	manager, err := s.employees.GetByID(ctx, *emp.ManagerID)
	if err != nil {
		s.log.WarnContext(ctx, "load manager failed", slog.String("error", err.Error()))
		return
	}

	names := make([]string, 0, len(held))
	for _, t := range held {
		names = append(names, fmt.Sprintf("%s (%s)", t.Name, t.AssetTag))
	}

	subject := fmt.Sprintf("Tool collection needed: %s", emp.FullName())
	body := fmt.Sprintf("%s was terminated and still holds: %s", emp.FullName(), strings.Join(names, ", "))
	if err := s.notify.Send(ctx, manager.Email, subject, body); err != nil {
		s.log.WarnContext(ctx, "tool collection reminder failed", slog.String("error", err.Error()))
	}
}
