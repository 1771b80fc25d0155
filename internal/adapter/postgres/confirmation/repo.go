// Package confirmation implements the pending-action store using PostgreSQL.
// Pending actions are the server-side half of the assistant's confirmation
// protocol: Proposed → Confirmed → Executed, with a TTL.
package confirmation

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

const table = "pending_actions"

var columns = []string{
	"id", "actor_id", "kind", "payload", "state", "created_at", "expires_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides pending-action persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pending-action repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a pending action by correlation ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingAction, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	p, err := scanPending(row)
	if err != nil {
		return nil, postgres.MapError(err, "pending_action", id)
	}
	return p, nil
}

// Create inserts a new proposed action and returns it.
func (r *Repo) Create(ctx context.Context, p *domain.PendingAction) (*domain.PendingAction, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(p.ID, p.ActorID, p.Kind, p.Payload, p.State, p.CreatedAt, p.ExpiresAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanPending(row)
	if err != nil {
		return nil, postgres.MapError(err, "pending_action", p.ID)
	}
	return created, nil
}

// Transition moves an action from one state to another, guarded by the
// current state so concurrent confirms cannot double-execute.
// Returns domain.ErrConflict if the action is no longer in `from`.
func (r *Repo) Transition(ctx context.Context, id uuid.UUID, from, to domain.PendingState) error {
	query, args, err := qb.Update(table).
		Set("state", to).
		Where(sq.Eq{"id": id, "state": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "pending_action", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending_action %s: state is not %s: %w", id, from, domain.ErrConflict)
	}
	return nil
}

// ExpireOlderThan marks all proposed actions past their TTL as expired
// and returns how many were touched. Called opportunistically.
func (r *Repo) ExpireOlderThan(ctx context.Context, now time.Time) (int, error) {
	query, args, err := qb.Update(table).
		Set("state", domain.PendingExpired).
		Where(sq.Eq{"state": domain.PendingProposed}).
		Where(sq.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("expire pending_actions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanPending(row pgx.Row) (*domain.PendingAction, error) {
	var p domain.PendingAction
	err := row.Scan(&p.ID, &p.ActorID, &p.Kind, &p.Payload, &p.State, &p.CreatedAt, &p.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
