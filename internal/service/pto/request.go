package pto

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Request submits a time-off request. Days are counted as business days
// in the inclusive range. Paid types require sufficient balance, and
// overlapping pending or approved requests are rejected.
func (s *Service) Request(ctx context.Context, input RequestInput) (*domain.PTORequest, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanRequestPTO() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	employeeID := input.EmployeeID
	if employeeID == uuid.Nil {
		employeeID = actor.ID
	}
	if employeeID != actor.ID && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	days := domain.BusinessDays(input.StartDate, input.EndDate)
	if days == 0 {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "start_date", Message: "range contains no business days"},
		}}
	}

	if input.Type != domain.PTOUnpaid {
		emp, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("load employee: %w", err)
		}
		if emp.PTOBalanceDays < days {
			return nil, fmt.Errorf("balance %.1f, need %.1f: %w", emp.PTOBalanceDays, days, domain.ErrConflict)
		}
	}

	overlap, err := s.requests.CountOverlapping(ctx, employeeID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlap > 0 {
		return nil, fmt.Errorf("overlapping request exists: %w", domain.ErrConflict)
	}

	req := &domain.PTORequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       input.Type,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Days:       days,
		Status:     domain.PTOPending,
		Reason:     input.Reason,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.log.InfoContext(ctx, "pto requested",
		slog.String("request_id", created.ID.String()),
		slog.String("employee_id", employeeID.String()),
		slog.Float64("days", days),
	)

	return created, nil
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (s *Service) Cancel(ctx context.Context, requestID uuid.UUID) (*domain.PTORequest, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req.EmployeeID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if req.Status != domain.PTOPending {
		return nil, fmt.Errorf("request is %s: %w", req.Status, domain.ErrConflict)
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, domain.PTOCancelled, nil)
	if err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	return updated, nil
}

// ListForEmployee returns an employee's request history. Actors may read
// their own; managers may read anyone's.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.PTORequest, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if employeeID != actor.ID && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	reqs, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return reqs, nil
}

// ListPending returns all requests awaiting a decision.
func (s *Service) ListPending(ctx context.Context) ([]*domain.PTORequest, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	reqs, err := s.requests.ListByStatus(ctx, domain.PTOPending)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	return reqs, nil
}

// Balance returns the remaining PTO days for an employee.
func (s *Service) Balance(ctx context.Context, employeeID uuid.UUID) (float64, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if employeeID != actor.ID && !actor.CanManageTeam() {
		return 0, domain.ErrForbidden
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("load employee: %w", err)
	}
	return emp.PTOBalanceDays, nil
}
