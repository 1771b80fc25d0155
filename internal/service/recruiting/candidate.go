package recruiting

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

// AddCandidate registers a new applicant at the APPLIED stage.
func (s *Service) AddCandidate(ctx context.Context, input AddCandidateInput) (*domain.Candidate, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cand := &domain.Candidate{
		ID:          uuid.New(),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       input.Phone,
		Position:    strings.TrimSpace(input.Position),
		Stage:       domain.StageApplied,
		RecruiterID: input.RecruiterID,
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.candidates.Create(ctx, cand)
	if err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	s.log.InfoContext(ctx, "candidate added",
		slog.String("candidate_id", created.ID.String()),
		slog.String("position", created.Position),
	)

	return created, nil
}

// Get returns a candidate by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}

	cand, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return cand, nil
}

// List returns candidates, optionally filtered by pipeline stage.
func (s *Service) List(ctx context.Context, stage *domain.PipelineStage) ([]*domain.Candidate, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}
	if stage != nil && !stage.IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "stage", Message: "unknown stage"},
		}}
	}

	cands, err := s.candidates.List(ctx, stage)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return cands, nil
}

// AdvanceStage moves a candidate through the pipeline. Terminal stages
// (HIRED, REJECTED) cannot be left once entered.
func (s *Service) AdvanceStage(ctx context.Context, input AdvanceStageInput) (*domain.Candidate, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	cand, err := s.candidates.GetByID(ctx, input.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}
	if !cand.CanAdvanceTo(input.Stage) {
		return nil, fmt.Errorf("stage %s to %s: %w", cand.Stage, input.Stage, domain.ErrConflict)
	}

	updated, err := s.candidates.UpdateStage(ctx, input.CandidateID, input.Stage)
	if err != nil {
		return nil, fmt.Errorf("update stage: %w", err)
	}

	s.log.InfoContext(ctx, "candidate stage changed",
		slog.String("candidate_id", updated.ID.String()),
		slog.String("from", cand.Stage.String()),
		slog.String("to", updated.Stage.String()),
	)

	return updated, nil
}

// Reject is a shortcut for advancing a candidate to REJECTED.
func (s *Service) Reject(ctx context.Context, candidateID uuid.UUID) (*domain.Candidate, error) {
	return s.AdvanceStage(ctx, AdvanceStageInput{CandidateID: candidateID, Stage: domain.StageRejected})
}

// Hire is a shortcut for advancing a candidate to HIRED.
func (s *Service) Hire(ctx context.Context, candidateID uuid.UUID) (*domain.Candidate, error) {
	return s.AdvanceStage(ctx, AdvanceStageInput{CandidateID: candidateID, Stage: domain.StageHired})
}

// AddNote attaches a free-text note to a candidate, authored by the actor.
func (s *Service) AddNote(ctx context.Context, input AddNoteInput) (*domain.CandidateNote, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.candidates.GetByID(ctx, input.CandidateID); err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}

	note := &domain.CandidateNote{
		ID:          uuid.New(),
		CandidateID: input.CandidateID,
		AuthorID:    actor.ID,
		Text:        strings.TrimSpace(input.Text),
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.candidates.AddNote(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return created, nil
}

// ListNotes returns all notes for a candidate, newest first.
func (s *Service) ListNotes(ctx context.Context, candidateID uuid.UUID) ([]*domain.CandidateNote, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageCandidates() {
		return nil, domain.ErrForbidden
	}

	notes, err := s.candidates.ListNotes(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
