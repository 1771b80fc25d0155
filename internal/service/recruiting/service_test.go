package recruiting

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockCandidateRepo struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	ListFunc        func(ctx context.Context, stage *domain.PipelineStage) ([]*domain.Candidate, error)
	CreateFunc      func(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error)
	UpdateStageFunc func(ctx context.Context, id uuid.UUID, stage domain.PipelineStage) (*domain.Candidate, error)
	AddNoteFunc     func(ctx context.Context, note *domain.CandidateNote) (*domain.CandidateNote, error)
	ListNotesFunc   func(ctx context.Context, candidateID uuid.UUID) ([]*domain.CandidateNote, error)
}

func (m *mockCandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCandidateRepo) List(ctx context.Context, stage *domain.PipelineStage) ([]*domain.Candidate, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, stage)
	}
	return nil, nil
}

func (m *mockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return c, nil
}

func (m *mockCandidateRepo) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.PipelineStage) (*domain.Candidate, error) {
	if m.UpdateStageFunc != nil {
		return m.UpdateStageFunc(ctx, id, stage)
	}
	return &domain.Candidate{ID: id, Stage: stage}, nil
}

func (m *mockCandidateRepo) AddNote(ctx context.Context, note *domain.CandidateNote) (*domain.CandidateNote, error) {
	if m.AddNoteFunc != nil {
		return m.AddNoteFunc(ctx, note)
	}
	return note, nil
}

func (m *mockCandidateRepo) ListNotes(ctx context.Context, candidateID uuid.UUID) ([]*domain.CandidateNote, error) {
	if m.ListNotesFunc != nil {
		return m.ListNotesFunc(ctx, candidateID)
	}
	return nil, nil
}

// ===========================================================================
// Helpers
// ===========================================================================

func newTestService() (*Service, *mockCandidateRepo) {
	repo := &mockCandidateRepo{}
	return NewService(slog.Default(), repo), repo
}

func recruiterCtx() context.Context {
	return ctxutil.WithActor(context.Background(), domain.Actor{
		ID:         uuid.New(),
		Role:       domain.RoleRecruiter,
		Department: domain.DepartmentRecruiting,
		Status:     domain.EmploymentActive,
	})
}

// ===========================================================================
// AddCandidate
// ===========================================================================

func TestService_AddCandidate_OK(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()

	repo.CreateFunc = func(_ context.Context, c *domain.Candidate) (*domain.Candidate, error) {
		assert.Equal(t, domain.StageApplied, c.Stage)
		assert.Equal(t, "amy.cole@example.com", c.Email)
		return c, nil
	}

	cand, err := svc.AddCandidate(recruiterCtx(), AddCandidateInput{
		FirstName: "Amy",
		LastName:  "Cole",
		Email:     " Amy.Cole@Example.com ",
		Position:  "Roofing Sales Rep",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amy Cole", cand.FullName())
}

func TestService_AddCandidate_AgentForbidden(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	ctx := ctxutil.WithActor(context.Background(), domain.Actor{
		ID:     uuid.New(),
		Role:   domain.RoleAgent,
		Status: domain.EmploymentActive,
	})

	_, err := svc.AddCandidate(ctx, AddCandidateInput{
		FirstName: "Amy", LastName: "Cole", Email: "a@b.com", Position: "Rep",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ===========================================================================
// AdvanceStage
// ===========================================================================

func TestService_AdvanceStage_OK(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()

	id := uuid.New()
	repo.GetByIDFunc = func(_ context.Context, got uuid.UUID) (*domain.Candidate, error) {
		return &domain.Candidate{ID: got, Stage: domain.StageScreening}, nil
	}

	cand, err := svc.AdvanceStage(recruiterCtx(), AdvanceStageInput{
		CandidateID: id,
		Stage:       domain.StageInterview,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StageInterview, cand.Stage)
}

func TestService_AdvanceStage_TerminalLocked(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()

	repo.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
		return &domain.Candidate{ID: id, Stage: domain.StageRejected}, nil
	}

	_, err := svc.AdvanceStage(recruiterCtx(), AdvanceStageInput{
		CandidateID: uuid.New(),
		Stage:       domain.StageInterview,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_Hire_SetsStage(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()

	repo.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
		return &domain.Candidate{ID: id, Stage: domain.StageOffer}, nil
	}

	cand, err := svc.Hire(recruiterCtx(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.StageHired, cand.Stage)
}

// ===========================================================================
// Notes
// ===========================================================================

func TestService_AddNote_SetsAuthor(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()

	actor := domain.Actor{
		ID:     uuid.New(),
		Role:   domain.RoleHR,
		Status: domain.EmploymentActive,
	}
	ctx := ctxutil.WithActor(context.Background(), actor)

	candID := uuid.New()
	repo.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
		return &domain.Candidate{ID: id, Stage: domain.StageApplied}, nil
	}

	note, err := svc.AddNote(ctx, AddNoteInput{CandidateID: candID, Text: "strong phone screen"})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, note.AuthorID)
	assert.Equal(t, candID, note.CandidateID)
}

func TestService_AddNote_CandidateMissing(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.AddNote(recruiterCtx(), AddNoteInput{CandidateID: uuid.New(), Text: "note"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
