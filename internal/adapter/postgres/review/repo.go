// Package review implements the performance-review repository using PostgreSQL.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

const table = "reviews"

var columns = []string{
	"id", "employee_id", "reviewer_id", "period", "status",
	"scheduled_for", "completed_at", "rating", "summary", "created_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides review persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a review by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	rv, err := scanReview(row)
	if err != nil {
		return nil, postgres.MapError(err, "review", id)
	}
	return rv, nil
}

// ListByEmployee returns all reviews for an employee, newest first.
func (r *Repo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Review, error) {
	b := qb.Select(columns...).From(table).
		Where(sq.Eq{"employee_id": employeeID}).
		OrderBy("scheduled_for DESC")
	return r.collect(ctx, b)
}

// ListScheduledByReviewer returns a reviewer's open reviews, soonest first.
func (r *Repo) ListScheduledByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*domain.Review, error) {
	b := qb.Select(columns...).From(table).
		Where(sq.Eq{"reviewer_id": reviewerID, "status": domain.ReviewScheduled}).
		OrderBy("scheduled_for ASC")
	return r.collect(ctx, b)
}

// FindScheduled returns the earliest open review for an employee, or
// domain.ErrNotFound if none exists.
func (r *Repo) FindScheduled(ctx context.Context, employeeID uuid.UUID) (*domain.Review, error) {
	query, args, err := qb.Select(columns...).From(table).
		Where(sq.Eq{"employee_id": employeeID, "status": domain.ReviewScheduled}).
		OrderBy("scheduled_for ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	rv, err := scanReview(row)
	if err != nil {
		return nil, postgres.MapError(err, "review", employeeID)
	}
	return rv, nil
}

func (r *Repo) collect(ctx context.Context, b sq.SelectBuilder) ([]*domain.Review, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

// Create inserts a new review and returns the persisted record.
func (r *Repo) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(rv.ID, rv.EmployeeID, rv.ReviewerID, rv.Period, rv.Status,
			rv.ScheduledFor, rv.CompletedAt, rv.Rating, rv.Summary, rv.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanReview(row)
	if err != nil {
		return nil, postgres.MapError(err, "review", rv.ID)
	}
	return created, nil
}

// CreateBulk inserts several reviews in one batch. Used by the
// department-wide scheduling path; runs inside the caller's transaction
// when one is present in the context.
func (r *Repo) CreateBulk(ctx context.Context, reviews []*domain.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	b := qb.Insert(table).Columns(columns...)
	for _, rv := range reviews {
		b = b.Values(rv.ID, rv.EmployeeID, rv.ReviewerID, rv.Period, rv.Status,
			rv.ScheduledFor, rv.CompletedAt, rv.Rating, rv.Summary, rv.CreatedAt)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "review", uuid.Nil)
	}
	return nil
}

// Complete records the outcome of a review.
func (r *Repo) Complete(ctx context.Context, id uuid.UUID, rating int, summary *string) (*domain.Review, error) {
	query, args, err := qb.Update(table).
		Set("status", domain.ReviewCompleted).
		Set("completed_at", time.Now().UTC()).
		Set("rating", rating).
		Set("summary", summary).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanReview(row)
	if err != nil {
		return nil, postgres.MapError(err, "review", id)
	}
	return updated, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID, &rv.EmployeeID, &rv.ReviewerID, &rv.Period, &rv.Status,
		&rv.ScheduledFor, &rv.CompletedAt, &rv.Rating, &rv.Summary, &rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
