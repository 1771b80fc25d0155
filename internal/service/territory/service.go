// Package territory manages sales territories and rep coverage.
package territory

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

type territoryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Territory, error)
	GetByName(ctx context.Context, name string) (*domain.Territory, error)
	List(ctx context.Context) ([]*domain.Territory, error)
	Create(ctx context.Context, t *domain.Territory) (*domain.Territory, error)
	AssignRep(ctx context.Context, id uuid.UUID, repID *uuid.UUID) (*domain.Territory, error)
}

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// Service provides territory management operations.
type Service struct {
	territories territoryRepo
	employees   employeeRepo
	log         *slog.Logger
}

// NewService creates a new Territory service.
func NewService(log *slog.Logger, territories territoryRepo, employees employeeRepo) *Service {
	return &Service{
		territories: territories,
		employees:   employees,
		log:         log.With("service", "territory"),
	}
}

// CreateInput holds the parameters for defining a territory.
type CreateInput struct {
	Name     string
	Region   string
	ZipCodes []string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(i.Region) == "" {
		errs = append(errs, domain.FieldError{Field: "region", Message: "required"})
	}
	for _, z := range i.ZipCodes {
		if len(strings.TrimSpace(z)) != 5 {
			errs = append(errs, domain.FieldError{Field: "zip_codes", Message: "zip codes must be 5 digits"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create defines a new, initially uncovered territory.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Territory, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageAgents() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	terr := &domain.Territory{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Region:    strings.TrimSpace(input.Region),
		ZipCodes:  input.ZipCodes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.territories.Create(ctx, terr)
	if err != nil {
		return nil, fmt.Errorf("create territory: %w", err)
	}

	s.log.InfoContext(ctx, "territory created",
		slog.String("territory_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}

// AssignRep gives a territory to a sales agent. Passing a nil repID
// leaves the territory uncovered.
func (s *Service) AssignRep(ctx context.Context, territoryID uuid.UUID, repID *uuid.UUID) (*domain.Territory, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageAgents() {
		return nil, domain.ErrForbidden
	}

	if repID != nil {
		emp, err := s.employees.GetByID(ctx, *repID)
		if err != nil {
			return nil, fmt.Errorf("load rep: %w", err)
		}
		if !emp.IsActive() {
			return nil, fmt.Errorf("rep is %s: %w", emp.Status, domain.ErrConflict)
		}
		if emp.Department != domain.DepartmentSales {
			return nil, fmt.Errorf("rep not in sales: %w", domain.ErrConflict)
		}
	}

	updated, err := s.territories.AssignRep(ctx, territoryID, repID)
	if err != nil {
		return nil, fmt.Errorf("assign rep: %w", err)
	}

	s.log.InfoContext(ctx, "territory rep changed", slog.String("territory_id", territoryID.String()))
	return updated, nil
}

// Get returns a territory by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Territory, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	terr, err := s.territories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get territory: %w", err)
	}
	return terr, nil
}

// List returns all territories.
func (s *Service) List(ctx context.Context) ([]*domain.Territory, error) {
	if _, ok := ctxutil.ActorFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	terrs, err := s.territories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list territories: %w", err)
	}
	return terrs, nil
}

// ListUncovered returns territories without an assigned rep.
func (s *Service) ListUncovered(ctx context.Context) ([]*domain.Territory, error) {
	terrs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	uncovered := make([]*domain.Territory, 0)
	for _, t := range terrs {
		if !t.IsCovered() {
			uncovered = append(uncovered, t)
		}
	}
	return uncovered, nil
}
