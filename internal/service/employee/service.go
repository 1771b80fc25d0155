// Package employee provides employee lifecycle operations: hiring,
// record updates, listing and termination.
package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Terminate(ctx context.Context, id uuid.UUID, when time.Time) error
}

type toolRepo interface {
	ListByHolder(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error)
}

type notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service provides employee management operations.
type Service struct {
	employees employeeRepo
	tools     toolRepo
	notify    notifier
	log       *slog.Logger
}

// NewService creates a new Employee service.
func NewService(log *slog.Logger, employees employeeRepo, tools toolRepo, notify notifier) *Service {
	return &Service{
		employees: employees,
		tools:     tools,
		notify:    notify,
		log:       log.With("service", "employee"),
	}
}
