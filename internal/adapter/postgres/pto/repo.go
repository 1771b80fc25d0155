// Package pto implements the PTO request repository using PostgreSQL.
package pto

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

const table = "pto_requests"

var columns = []string{
	"id", "employee_id", "type", "start_date", "end_date", "days",
	"status", "reason", "decided_by", "decided_at", "created_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides PTO request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new PTO repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a PTO request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PTORequest, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	p, err := scanRequest(row)
	if err != nil {
		return nil, postgres.MapError(err, "pto_request", id)
	}
	return p, nil
}

// ListByEmployee returns an employee's requests, newest first.
func (r *Repo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.PTORequest, error) {
	return r.list(ctx, sq.Eq{"employee_id": employeeID})
}

// ListByStatus returns all requests in the given status, oldest first
// so approvers see the longest-waiting requests at the top.
func (r *Repo) ListByStatus(ctx context.Context, status domain.PTOStatus) ([]*domain.PTORequest, error) {
	return r.list(ctx, sq.Eq{"status": status})
}

func (r *Repo) list(ctx context.Context, where sq.Eq) ([]*domain.PTORequest, error) {
	query, args, err := qb.Select(columns...).From(table).Where(where).OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pto_requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.PTORequest
	for rows.Next() {
		p, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pto_request: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pto_requests: %w", err)
	}
	return out, nil
}

// CountOverlapping counts non-cancelled requests for the employee whose
// date range intersects [start, end].
func (r *Repo) CountOverlapping(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(table).
		Where(sq.Eq{"employee_id": employeeID}).
		Where(sq.NotEq{"status": domain.PTOCancelled}).
		Where(sq.LtOrEq{"start_date": end}).
		Where(sq.GtOrEq{"end_date": start}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping pto_requests: %w", err)
	}
	return count, nil
}

// Create inserts a new PTO request and returns the persisted record.
func (r *Repo) Create(ctx context.Context, p *domain.PTORequest) (*domain.PTORequest, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(p.ID, p.EmployeeID, p.Type, p.StartDate, p.EndDate, p.Days,
			p.Status, p.Reason, p.DecidedBy, p.DecidedAt, p.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanRequest(row)
	if err != nil {
		return nil, postgres.MapError(err, "pto_request", p.ID)
	}
	return created, nil
}

// UpdateStatus records an approval decision (or cancellation).
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PTOStatus, decidedBy *uuid.UUID) (*domain.PTORequest, error) {
	b := qb.Update(table).Set("status", status).Where(sq.Eq{"id": id})
	if decidedBy != nil {
		b = b.Set("decided_by", *decidedBy).Set("decided_at", time.Now().UTC())
	}

	query, args, err := b.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanRequest(row)
	if err != nil {
		return nil, postgres.MapError(err, "pto_request", id)
	}
	return updated, nil
}

func scanRequest(row pgx.Row) (*domain.PTORequest, error) {
	var p domain.PTORequest
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Type, &p.StartDate, &p.EndDate, &p.Days,
		&p.Status, &p.Reason, &p.DecidedBy, &p.DecidedAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
