package tooling

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

// RegisterInput holds the parameters for adding a tool to inventory.
type RegisterInput struct {
	Name     string
	AssetTag string
	Notes    *string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.AssetTag) == "" {
		errs = append(errs, domain.FieldError{Field: "asset_tag", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Register adds a tool to inventory in the AVAILABLE state.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Tool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tool := &domain.Tool{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		AssetTag:  strings.ToUpper(strings.TrimSpace(input.AssetTag)),
		Status:    domain.ToolAvailable,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.tools.Create(ctx, tool)
	if err != nil {
		return nil, fmt.Errorf("register tool: %w", err)
	}

	s.log.InfoContext(ctx, "tool registered",
		slog.String("tool_id", created.ID.String()),
		slog.String("asset_tag", created.AssetTag),
	)

	return created, nil
}

// Assign hands an available tool to an active employee.
func (s *Service) Assign(ctx context.Context, toolID, employeeID uuid.UUID) (*domain.Tool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	tool, err := s.tools.GetByID(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("load tool: %w", err)
	}
	if !tool.IsAssignable() {
		return nil, fmt.Errorf("tool is %s: %w", tool.Status, domain.ErrConflict)
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if !emp.IsActive() {
		return nil, fmt.Errorf("employee is %s: %w", emp.Status, domain.ErrConflict)
	}

	updated, err := s.tools.Assign(ctx, toolID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("assign tool: %w", err)
	}

	s.log.InfoContext(ctx, "tool assigned",
		slog.String("tool_id", toolID.String()),
		slog.String("employee_id", employeeID.String()),
	)

	return updated, nil
}

// Return puts an assigned tool back into the available pool.
func (s *Service) Return(ctx context.Context, toolID uuid.UUID) (*domain.Tool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	tool, err := s.tools.GetByID(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("load tool: %w", err)
	}
	if tool.Status != domain.ToolAssigned {
		return nil, fmt.Errorf("tool is %s: %w", tool.Status, domain.ErrConflict)
	}

	updated, err := s.tools.Release(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("return tool: %w", err)
	}
	return updated, nil
}

// ReportLost marks a tool as lost and detaches it from its holder.
func (s *Service) ReportLost(ctx context.Context, toolID uuid.UUID) (*domain.Tool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	updated, err := s.tools.SetStatus(ctx, toolID, domain.ToolLost)
	if err != nil {
		return nil, fmt.Errorf("report lost: %w", err)
	}

	s.log.InfoContext(ctx, "tool reported lost", slog.String("tool_id", toolID.String()))
	return updated, nil
}

// List returns tools, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *domain.ToolStatus) ([]*domain.Tool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}
	if status != nil && !status.IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "unknown status"},
		}}
	}

	tools, err := s.tools.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return tools, nil
}

// ListForEmployee returns the tools an employee currently holds. Actors
// may always see their own.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if employeeID != actor.ID && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	tools, err := s.tools.ListByHolder(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list held tools: %w", err)
	}
	return tools, nil
}
