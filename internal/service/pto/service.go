// Package pto handles time-off requests: submission, approval flow
// and balance accounting.
package pto

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

type ptoRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PTORequest, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.PTORequest, error)
	ListByStatus(ctx context.Context, status domain.PTOStatus) ([]*domain.PTORequest, error)
	CountOverlapping(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int, error)
	Create(ctx context.Context, p *domain.PTORequest) (*domain.PTORequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PTOStatus, decidedBy *uuid.UUID) (*domain.PTORequest, error)
}

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	AdjustPTOBalance(ctx context.Context, id uuid.UUID, delta float64) error
}

type notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides PTO request operations.
type Service struct {
	requests  ptoRepo
	employees employeeRepo
	notify    notifier
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new PTO service.
func NewService(log *slog.Logger, requests ptoRepo, employees employeeRepo, notify notifier, tx txManager) *Service {
	return &Service{
		requests:  requests,
		employees: employees,
		notify:    notify,
		tx:        tx,
		log:       log.With("service", "pto"),
	}
}
