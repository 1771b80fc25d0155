// Package document implements the employee-document repository using PostgreSQL.
package document

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

const table = "documents"

var columns = []string{
	"id", "employee_id", "type", "title", "storage_path", "uploaded_by", "created_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides document metadata persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a document by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	d, err := scanDocument(row)
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	return d, nil
}

// ListByEmployee returns an employee's documents, newest first.
func (r *Repo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Document, error) {
	query, args, err := qb.Select(columns...).From(table).
		Where(sq.Eq{"employee_id": employeeID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

// Create inserts a new document record and returns it.
func (r *Repo) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(d.ID, d.EmployeeID, d.Type, d.Title, d.StoragePath, d.UploadedBy, d.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanDocument(row)
	if err != nil {
		return nil, postgres.MapError(err, "document", d.ID)
	}
	return created, nil
}

// Delete removes a document record. Returns domain.ErrNotFound if absent.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.EmployeeID, &d.Type, &d.Title, &d.StoragePath, &d.UploadedBy, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
