// Package contract implements the contract repository using PostgreSQL.
package contract

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

const table = "contracts"

var columns = []string{
	"id", "employee_id", "candidate_id", "type", "status",
	"sent_at", "signed_at", "voided_at", "created_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides contract persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contract repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a contract by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	c, err := scanContract(row)
	if err != nil {
		return nil, postgres.MapError(err, "contract", id)
	}
	return c, nil
}

// ListByEmployee returns an employee's contracts, newest first.
func (r *Repo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Contract, error) {
	return r.list(ctx, sq.Eq{"employee_id": employeeID})
}

// ListByCandidate returns a candidate's contracts, newest first.
func (r *Repo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.Contract, error) {
	return r.list(ctx, sq.Eq{"candidate_id": candidateID})
}

func (r *Repo) list(ctx context.Context, where sq.Eq) ([]*domain.Contract, error) {
	query, args, err := qb.Select(columns...).From(table).Where(where).OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contracts: %w", err)
	}
	return out, nil
}

// Create inserts a new contract and returns the persisted record.
func (r *Repo) Create(ctx context.Context, c *domain.Contract) (*domain.Contract, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(c.ID, c.EmployeeID, c.CandidateID, c.Type, c.Status,
			c.SentAt, c.SignedAt, c.VoidedAt, c.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanContract(row)
	if err != nil {
		return nil, postgres.MapError(err, "contract", c.ID)
	}
	return created, nil
}

// SetStatus moves a contract through its lifecycle, stamping the matching
// timestamp column for SENT, SIGNED and VOIDED.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ContractStatus) (*domain.Contract, error) {
	now := time.Now().UTC()
	b := qb.Update(table).Set("status", status).Where(sq.Eq{"id": id})
	switch status {
	case domain.ContractSent:
		b = b.Set("sent_at", now)
	case domain.ContractSigned:
		b = b.Set("signed_at", now)
	case domain.ContractVoided:
		b = b.Set("voided_at", now)
	}

	query, args, err := b.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanContract(row)
	if err != nil {
		return nil, postgres.MapError(err, "contract", id)
	}
	return updated, nil
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CandidateID, &c.Type, &c.Status,
		&c.SentAt, &c.SignedAt, &c.VoidedAt, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
