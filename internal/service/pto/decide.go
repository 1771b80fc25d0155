package pto

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// Decide approves or denies a pending request. Approval of a paid type
// deducts the business days from the employee's balance. The requester
// is notified best-effort.
func (s *Service) Decide(ctx context.Context, input DecideInput) (*domain.PTORequest, error) {
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

	req, err := s.requests.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req.Status != domain.PTOPending {
		return nil, fmt.Errorf("request is %s: %w", req.Status, domain.ErrConflict)
	}
	if req.EmployeeID == actor.ID {
		return nil, fmt.Errorf("cannot decide own request: %w", domain.ErrForbidden)
	}

	status := domain.PTODenied
	if input.Approve {
		status = domain.PTOApproved
	}

	// Status change and balance deduction commit together or not at all.
	var updated *domain.PTORequest
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		updated, err = s.requests.UpdateStatus(ctx, input.RequestID, status, &actor.ID)
		if err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		if input.Approve && req.Type != domain.PTOUnpaid {
			if err := s.employees.AdjustPTOBalance(ctx, req.EmployeeID, -req.Days); err != nil {
				return fmt.Errorf("adjust balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "pto decided",
		slog.String("request_id", updated.ID.String()),
		slog.String("status", status.String()),
		slog.String("by", actor.ID.String()),
	)

	s.notifyRequester(ctx, updated)
	return updated, nil
}

func (s *Service) notifyRequester(ctx context.Context, req *domain.PTORequest) {
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		s.log.WarnContext(ctx, "load requester failed", slog.String("error", err.Error()))
		return
	}

	subject := fmt.Sprintf("PTO request %s", req.Status)
	body := fmt.Sprintf("Your %s request for %s to %s was %s.",
		req.Type,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		req.Status,
	)
	if err := s.notify.Send(ctx, emp.Email, subject, body); err != nil {
		s.log.WarnContext(ctx, "pto notification failed", slog.String("error", err.Error()))
	}
}
