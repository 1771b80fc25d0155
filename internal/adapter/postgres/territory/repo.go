// Package territory implements the sales-territory repository using PostgreSQL.
package territory

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

const table = "territories"

var columns = []string{
	"id", "name", "region", "zip_codes", "rep_id", "created_at", "updated_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides territory persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new territory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a territory by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Territory, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	t, err := scanTerritory(row)
	if err != nil {
		return nil, postgres.MapError(err, "territory", id)
	}
	return t, nil
}

// GetByName returns a territory by its case-insensitive name.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Territory, error) {
	query, args, err := qb.Select(columns...).From(table).
		Where("LOWER(name) = LOWER(?)", name).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	t, err := scanTerritory(row)
	if err != nil {
		return nil, postgres.MapError(err, "territory", uuid.Nil)
	}
	return t, nil
}

// List returns all territories ordered by name.
func (r *Repo) List(ctx context.Context) ([]*domain.Territory, error) {
	query, args, err := qb.Select(columns...).From(table).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list territories: %w", err)
	}
	defer rows.Close()

	var out []*domain.Territory
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan territory: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate territories: %w", err)
	}
	return out, nil
}

// Create inserts a new territory and returns the persisted record.
func (r *Repo) Create(ctx context.Context, t *domain.Territory) (*domain.Territory, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(t.ID, t.Name, t.Region, t.ZipCodes, t.RepID, t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanTerritory(row)
	if err != nil {
		return nil, postgres.MapError(err, "territory", t.ID)
	}
	return created, nil
}

// AssignRep sets (or clears, with nil) the agent covering a territory.
func (r *Repo) AssignRep(ctx context.Context, id uuid.UUID, repID *uuid.UUID) (*domain.Territory, error) {
	query, args, err := qb.Update(table).
		Set("rep_id", repID).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanTerritory(row)
	if err != nil {
		return nil, postgres.MapError(err, "territory", id)
	}
	return updated, nil
}

func scanTerritory(row pgx.Row) (*domain.Territory, error) {
	var t domain.Territory
	err := row.Scan(&t.ID, &t.Name, &t.Region, &t.ZipCodes, &t.RepID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
