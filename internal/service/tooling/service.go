// Package tooling tracks company equipment: registration, assignment
// and return.
package tooling

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

type toolRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tool, error)
	GetByAssetTag(ctx context.Context, tag string) (*domain.Tool, error)
	List(ctx context.Context, status *domain.ToolStatus) ([]*domain.Tool, error)
	ListByHolder(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error)
	Create(ctx context.Context, t *domain.Tool) (*domain.Tool, error)
	Assign(ctx context.Context, id, employeeID uuid.UUID) (*domain.Tool, error)
	Release(ctx context.Context, id uuid.UUID) (*domain.Tool, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ToolStatus) (*domain.Tool, error)
}

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// Service provides equipment tracking operations.
type Service struct {
	tools     toolRepo
	employees employeeRepo
	log       *slog.Logger
}

// NewService creates a new Tooling service.
func NewService(log *slog.Logger, tools toolRepo, employees employeeRepo) *Service {
	return &Service{
		tools:     tools,
		employees: employees,
		log:       log.With("service", "tooling"),
	}
}
