// Package review manages performance review scheduling and completion.
package review

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

type reviewRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Review, error)
	ListScheduledByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*domain.Review, error)
	FindScheduled(ctx context.Context, employeeID uuid.UUID) (*domain.Review, error)
	Create(ctx context.Context, rv *domain.Review) (*domain.Review, error)
	CreateBulk(ctx context.Context, reviews []*domain.Review) error
	Complete(ctx context.Context, id uuid.UUID, rating int, summary *string) (*domain.Review, error)
}

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error)
}

// Service provides performance review operations.
type Service struct {
	reviews   reviewRepo
	employees employeeRepo
	log       *slog.Logger
}

// NewService creates a new Review service.
func NewService(log *slog.Logger, reviews reviewRepo, employees employeeRepo) *Service {
	return &Service{
		reviews:   reviews,
		employees: employees,
		log:       log.With("service", "review"),
	}
}

// ScheduleInput holds the parameters for scheduling a review.
type ScheduleInput struct {
	EmployeeID   uuid.UUID
	Period       string
	ScheduledFor time.Time
}

// Validate checks all fields and collects all errors.
func (i ScheduleInput) Validate() error {
	var errs []domain.FieldError

	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}
	if strings.TrimSpace(i.Period) == "" {
		errs = append(errs, domain.FieldError{Field: "period", Message: "required"})
	}
	if i.ScheduledFor.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_for", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CompleteInput records the outcome of a review.
type CompleteInput struct {
	ReviewID uuid.UUID
	Rating   int
	Summary  *string
}

// Validate checks all fields and collects all errors.
func (i CompleteInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	if i.Rating < 1 || i.Rating > 5 {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Schedule creates a review with the actor as reviewer.
func (s *Service) Schedule(ctx context.Context, input ScheduleInput) (*domain.Review, error) {
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

	if _, err := s.employees.GetByID(ctx, input.EmployeeID); err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	rv := &domain.Review{
		ID:           uuid.New(),
		EmployeeID:   input.EmployeeID,
		ReviewerID:   actor.ID,
		Period:       strings.TrimSpace(input.Period),
		Status:       domain.ReviewScheduled,
		ScheduledFor: input.ScheduledFor,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, rv)
	if err != nil {
		return nil, fmt.Errorf("schedule review: %w", err)
	}

	s.log.InfoContext(ctx, "review scheduled",
		slog.String("review_id", created.ID.String()),
		slog.String("employee_id", input.EmployeeID.String()),
	)

	return created, nil
}

// ScheduleForDepartment schedules a review for every active employee
// in a department, all on the same date.
func (s *Service) ScheduleForDepartment(ctx context.Context, dept domain.Department, period string, when time.Time) (int, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return 0, domain.ErrForbidden
	}
	if !dept.IsValid() {
		return 0, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "department", Message: "unknown department"},
		}}
	}

	filter := domain.ActiveEmployees()
	filter.Department = &dept
	emps, err := s.employees.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("list employees: %w", err)
	}
	if len(emps) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	reviews := make([]*domain.Review, 0, len(emps))
	for _, emp := range emps {
		reviews = append(reviews, &domain.Review{
			ID:           uuid.New(),
			EmployeeID:   emp.ID,
			ReviewerID:   actor.ID,
			Period:       period,
			Status:       domain.ReviewScheduled,
			ScheduledFor: when,
			CreatedAt:    now,
		})
	}

	if err := s.reviews.CreateBulk(ctx, reviews); err != nil {
		return 0, fmt.Errorf("bulk schedule: %w", err)
	}

	s.log.InfoContext(ctx, "department reviews scheduled",
		slog.String("department", dept.String()),
		slog.Int("count", len(reviews)),
	)

	return len(reviews), nil
}

// Complete records a rating and summary on a scheduled review.
func (s *Service) Complete(ctx context.Context, input CompleteInput) (*domain.Review, error) {
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

	rv, err := s.reviews.GetByID(ctx, input.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("load review: %w", err)
	}
	if rv.Status != domain.ReviewScheduled {
		return nil, fmt.Errorf("review is %s: %w", rv.Status, domain.ErrConflict)
	}

	updated, err := s.reviews.Complete(ctx, input.ReviewID, input.Rating, input.Summary)
	if err != nil {
		return nil, fmt.Errorf("complete review: %w", err)
	}

	s.log.InfoContext(ctx, "review completed",
		slog.String("review_id", updated.ID.String()),
		slog.Int("rating", input.Rating),
	)

	return updated, nil
}

// ListForEmployee returns an employee's review history. Actors may read
// their own.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Review, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if employeeID != actor.ID && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	reviews, err := s.reviews.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListOpenForReviewer returns the actor's still-scheduled reviews.
func (s *Service) ListOpenForReviewer(ctx context.Context) ([]*domain.Review, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	reviews, err := s.reviews.ListScheduledByReviewer(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list open reviews: %w", err)
	}
	return reviews, nil
}
