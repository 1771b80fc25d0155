// Package recruiting manages the candidate pipeline: applications,
// stage transitions, notes and hiring.
package recruiting

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

type candidateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	List(ctx context.Context, stage *domain.PipelineStage) ([]*domain.Candidate, error)
	Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage domain.PipelineStage) (*domain.Candidate, error)
	AddNote(ctx context.Context, note *domain.CandidateNote) (*domain.CandidateNote, error)
	ListNotes(ctx context.Context, candidateID uuid.UUID) ([]*domain.CandidateNote, error)
}

// Service provides candidate pipeline operations.
type Service struct {
	candidates candidateRepo
	log        *slog.Logger
}

// NewService creates a new Recruiting service.
func NewService(log *slog.Logger, candidates candidateRepo) *Service {
	return &Service{
		candidates: candidates,
		log:        log.With("service", "recruiting"),
	}
}
