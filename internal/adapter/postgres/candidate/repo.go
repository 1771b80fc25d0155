// Package candidate implements the recruiting-pipeline repository using
// PostgreSQL. It stores candidates and their free-text notes.
package candidate

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

const (
	table      = "candidates"
	notesTable = "candidate_notes"
)

var columns = []string{
	"id", "first_name", "last_name", "email", "phone",
	"position", "stage", "recruiter_id", "applied_at", "updated_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides candidate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new candidate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a candidate by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	c, err := scanCandidate(row)
	if err != nil {
		return nil, postgres.MapError(err, "candidate", id)
	}
	return c, nil
}

// List returns candidates, optionally narrowed to one pipeline stage,
// newest applications first.
func (r *Repo) List(ctx context.Context, stage *domain.PipelineStage) ([]*domain.Candidate, error) {
	b := qb.Select(columns...).From(table).OrderBy("applied_at DESC")
	if stage != nil {
		b = b.Where(sq.Eq{"stage": *stage})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

// Create inserts a new candidate and returns the persisted record.
func (r *Repo) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
			c.Position, c.Stage, c.RecruiterID, c.AppliedAt, c.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanCandidate(row)
	if err != nil {
		return nil, postgres.MapError(err, "candidate", c.ID)
	}
	return created, nil
}

// UpdateStage moves a candidate to a new pipeline stage.
func (r *Repo) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.PipelineStage) (*domain.Candidate, error) {
	query, args, err := qb.Update(table).
		Set("stage", stage).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanCandidate(row)
	if err != nil {
		return nil, postgres.MapError(err, "candidate", id)
	}
	return updated, nil
}

// AddNote attaches a note to a candidate.
func (r *Repo) AddNote(ctx context.Context, note *domain.CandidateNote) (*domain.CandidateNote, error) {
	query, args, err := qb.Insert(notesTable).
		Columns("id", "candidate_id", "author_id", "text", "created_at").
		Values(note.ID, note.CandidateID, note.AuthorID, note.Text, note.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "candidate_note", note.ID)
	}
	return note, nil
}

// ListNotes returns a candidate's notes, oldest first.
func (r *Repo) ListNotes(ctx context.Context, candidateID uuid.UUID) ([]*domain.CandidateNote, error) {
	query, args, err := qb.
		Select("id", "candidate_id", "author_id", "text", "created_at").
		From(notesTable).
		Where(sq.Eq{"candidate_id": candidateID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidate notes: %w", err)
	}
	defer rows.Close()

	var out []*domain.CandidateNote
	for rows.Next() {
		var n domain.CandidateNote
		if err := rows.Scan(&n.ID, &n.CandidateID, &n.AuthorID, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate note: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate notes: %w", err)
	}
	return out, nil
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Position, &c.Stage, &c.RecruiterID, &c.AppliedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
