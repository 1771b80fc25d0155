// Package contract manages agreement issuance and the signature
// lifecycle.
package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

type contractRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Contract, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.Contract, error)
	Create(ctx context.Context, c *domain.Contract) (*domain.Contract, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ContractStatus) (*domain.Contract, error)
}

// Service provides contract lifecycle operations.
type Service struct {
	contracts contractRepo
	log       *slog.Logger
}

// NewService creates a new Contract service.
func NewService(log *slog.Logger, contracts contractRepo) *Service {
	return &Service{
		contracts: contracts,
		log:       log.With("service", "contract"),
	}
}

// IssueInput holds the parameters for issuing a contract. Exactly one
// of EmployeeID / CandidateID must be set.
type IssueInput struct {
	EmployeeID  *uuid.UUID
	CandidateID *uuid.UUID
	Type        domain.ContractType
}

// Validate checks all fields and collects all errors.
func (i IssueInput) Validate() error {
	var errs []domain.FieldError

	if (i.EmployeeID == nil) == (i.CandidateID == nil) {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "exactly one of employee_id or candidate_id required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown type"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Issue creates a contract in DRAFT and immediately marks it SENT.
func (s *Service) Issue(ctx context.Context, input IssueInput) (*domain.Contract, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() && !actor.CanManageAgents() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	c := &domain.Contract{
		ID:          uuid.New(),
		EmployeeID:  input.EmployeeID,
		CandidateID: input.CandidateID,
		Type:        input.Type,
		Status:      domain.ContractDraft,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.contracts.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}

	sent, err := s.contracts.SetStatus(ctx, created.ID, domain.ContractSent)
	if err != nil {
		return nil, fmt.Errorf("send contract: %w", err)
	}

	s.log.InfoContext(ctx, "contract issued",
		slog.String("contract_id", sent.ID.String()),
		slog.String("type", sent.Type.String()),
	)

	return sent, nil
}

// MarkSigned records a signature on a sent contract.
func (s *Service) MarkSigned(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() && !actor.CanManageAgents() {
		return nil, domain.ErrForbidden
	}

	c, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if !c.CanSign() {
		return nil, fmt.Errorf("contract is %s: %w", c.Status, domain.ErrConflict)
	}

	updated, err := s.contracts.SetStatus(ctx, contractID, domain.ContractSigned)
	if err != nil {
		return nil, fmt.Errorf("sign contract: %w", err)
	}

	s.log.InfoContext(ctx, "contract signed", slog.String("contract_id", contractID.String()))
	return updated, nil
}

// Void cancels a contract that has not been signed yet.
func (s *Service) Void(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() && !actor.CanManageAgents() {
		return nil, domain.ErrForbidden
	}

	c, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if !c.CanVoid() {
		return nil, fmt.Errorf("contract is %s: %w", c.Status, domain.ErrConflict)
	}

	updated, err := s.contracts.SetStatus(ctx, contractID, domain.ContractVoided)
	if err != nil {
		return nil, fmt.Errorf("void contract: %w", err)
	}

	s.log.InfoContext(ctx, "contract voided", slog.String("contract_id", contractID.String()))
	return updated, nil
}

// ListForEmployee returns an employee's contracts. Actors may read
// their own.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Contract, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if employeeID != actor.ID && !actor.CanManageEmployees() && !actor.CanManageAgents() {
		return nil, domain.ErrForbidden
	}

	contracts, err := s.contracts.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

// ListForCandidate returns a candidate's contracts.
func (s *Service) ListForCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.Contract, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}

	contracts, err := s.contracts.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}
