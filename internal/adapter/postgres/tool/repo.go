// Package tool implements the equipment repository using PostgreSQL.
package tool

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

const table = "tools"

var columns = []string{
	"id", "name", "asset_tag", "status", "assigned_to", "assigned_at",
	"notes", "created_at", "updated_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides equipment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tool repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a tool by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tool, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	t, err := scanTool(row)
	if err != nil {
		return nil, postgres.MapError(err, "tool", id)
	}
	return t, nil
}

// GetByAssetTag returns a tool by its (unique) asset tag.
func (r *Repo) GetByAssetTag(ctx context.Context, tag string) (*domain.Tool, error) {
	query, args, err := qb.Select(columns...).From(table).
		Where("LOWER(asset_tag) = LOWER(?)", tag).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	t, err := scanTool(row)
	if err != nil {
		return nil, postgres.MapError(err, "tool", uuid.Nil)
	}
	return t, nil
}

// List returns tools, optionally narrowed to one status.
func (r *Repo) List(ctx context.Context, status *domain.ToolStatus) ([]*domain.Tool, error) {
	b := qb.Select(columns...).From(table).OrderBy("name ASC")
	if status != nil {
		b = b.Where(sq.Eq{"status": *status})
	}
	return r.collect(ctx, b)
}

// ListByHolder returns tools currently assigned to the given employee.
func (r *Repo) ListByHolder(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error) {
	b := qb.Select(columns...).From(table).
		Where(sq.Eq{"assigned_to": employeeID, "status": domain.ToolAssigned}).
		OrderBy("name ASC")
	return r.collect(ctx, b)
}

// ListHeldByTerminated returns tools still assigned to employees whose
// status is TERMINATED. Drives the equipment-reminder sweep.
func (r *Repo) ListHeldByTerminated(ctx context.Context) ([]*domain.Tool, error) {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = "t." + c
	}
	b := qb.Select(cols...).From(table + " t").
		Join("employees e ON e.id = t.assigned_to").
		Where(sq.Eq{"t.status": domain.ToolAssigned, "e.status": domain.EmploymentTerminated}).
		OrderBy("t.name ASC")
	return r.collect(ctx, b)
}

func (r *Repo) collect(ctx context.Context, b sq.SelectBuilder) ([]*domain.Tool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var out []*domain.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tools: %w", err)
	}
	return out, nil
}

// Create inserts a new tool and returns the persisted record.
func (r *Repo) Create(ctx context.Context, t *domain.Tool) (*domain.Tool, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(t.ID, t.Name, t.AssetTag, t.Status, t.AssignedTo, t.AssignedAt,
			t.Notes, t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanTool(row)
	if err != nil {
		return nil, postgres.MapError(err, "tool", t.ID)
	}
	return created, nil
}

// Assign hands the tool to an employee.
func (r *Repo) Assign(ctx context.Context, id, employeeID uuid.UUID) (*domain.Tool, error) {
	return r.update(ctx, id, map[string]any{
		"status":      domain.ToolAssigned,
		"assigned_to": employeeID,
		"assigned_at": time.Now().UTC(),
	})
}

// Release returns the tool to the available pool.
func (r *Repo) Release(ctx context.Context, id uuid.UUID) (*domain.Tool, error) {
	return r.update(ctx, id, map[string]any{
		"status":      domain.ToolAvailable,
		"assigned_to": nil,
		"assigned_at": nil,
	})
}

// SetStatus changes a tool's status without touching assignment fields.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ToolStatus) (*domain.Tool, error) {
	return r.update(ctx, id, map[string]any{"status": status})
}

func (r *Repo) update(ctx context.Context, id uuid.UUID, sets map[string]any) (*domain.Tool, error) {
	b := qb.Update(table).Where(sq.Eq{"id": id}).Set("updated_at", time.Now().UTC())
	for col, val := range sets {
		b = b.Set(col, val)
	}

	query, args, err := b.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanTool(row)
	if err != nil {
		return nil, postgres.MapError(err, "tool", id)
	}
	return updated, nil
}

func scanTool(row pgx.Row) (*domain.Tool, error) {
	var t domain.Tool
	err := row.Scan(
		&t.ID, &t.Name, &t.AssetTag, &t.Status, &t.AssignedTo, &t.AssignedAt,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
