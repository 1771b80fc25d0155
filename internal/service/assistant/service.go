// Package assistant is the natural-language action dispatcher: it scans
// a free-text message against every business domain, resolves fuzzy
// record references, enforces per-domain permissions and either executes
// a mutation or parks it behind a persisted confirmation.
package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/config"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/contract"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/employee"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/pto"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/recruiting"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/review"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// Directories are read-only repo views used for name resolution; the
// mutating paths go through the domain services so business rules are
// enforced in one place.

type employeeDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error)
}

type candidateDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	List(ctx context.Context, stage *domain.PipelineStage) ([]*domain.Candidate, error)
}

type toolDirectory interface {
	GetByAssetTag(ctx context.Context, tag string) (*domain.Tool, error)
	List(ctx context.Context, status *domain.ToolStatus) ([]*domain.Tool, error)
}

type territoryDirectory interface {
	GetByName(ctx context.Context, name string) (*domain.Territory, error)
	List(ctx context.Context) ([]*domain.Territory, error)
}

type ptoDirectory interface {
	ListByStatus(ctx context.Context, status domain.PTOStatus) ([]*domain.PTORequest, error)
}

type contractDirectory interface {
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Contract, error)
}

type employeeService interface {
	Terminate(ctx context.Context, input employee.TerminateInput) error
}

type ptoService interface {
	Request(ctx context.Context, input pto.RequestInput) (*domain.PTORequest, error)
	Decide(ctx context.Context, input pto.DecideInput) (*domain.PTORequest, error)
	Balance(ctx context.Context, employeeID uuid.UUID) (float64, error)
}

type recruitingService interface {
	AdvanceStage(ctx context.Context, input recruiting.AdvanceStageInput) (*domain.Candidate, error)
	AddNote(ctx context.Context, input recruiting.AddNoteInput) (*domain.CandidateNote, error)
}

type toolingService interface {
	Assign(ctx context.Context, toolID, employeeID uuid.UUID) (*domain.Tool, error)
	ReportLost(ctx context.Context, toolID uuid.UUID) (*domain.Tool, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error)
}

type territoryService interface {
	AssignRep(ctx context.Context, territoryID uuid.UUID, repID *uuid.UUID) (*domain.Territory, error)
}

type contractService interface {
	Issue(ctx context.Context, input contract.IssueInput) (*domain.Contract, error)
	MarkSigned(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error)
	Void(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error)
}

type reviewService interface {
	Schedule(ctx context.Context, input review.ScheduleInput) (*domain.Review, error)
	Complete(ctx context.Context, input review.CompleteInput) (*domain.Review, error)
	ScheduleForDepartment(ctx context.Context, dept domain.Department, period string, when time.Time) (int, error)
	ListOpenForReviewer(ctx context.Context) ([]*domain.Review, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Review, error)
}

type documentService interface {
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Document, error)
}

type pendingRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingAction, error)
	Create(ctx context.Context, p *domain.PendingAction) (*domain.PendingAction, error)
	Transition(ctx context.Context, id uuid.UUID, from, to domain.PendingState) error
}

// Deps bundles the dispatcher's collaborators.
type Deps struct {
	Employees   employeeDirectory
	Candidates  candidateDirectory
	Tools       toolDirectory
	Territories territoryDirectory
	PTORequests ptoDirectory
	Contracts   contractDirectory

	EmployeeSvc   employeeService
	PTOSvc        ptoService
	RecruitingSvc recruitingService
	ToolingSvc    toolingService
	TerritorySvc  territoryService
	ContractSvc   contractService
	ReviewSvc     reviewService
	DocumentSvc   documentService

	Pending pendingRepo
}

// Service is the intent scanner and dispatcher.
type Service struct {
	deps Deps
	cfg  config.AssistantConfig
	log  *slog.Logger
}

// NewService creates a new Assistant service.
func NewService(log *slog.Logger, deps Deps, cfg config.AssistantConfig) *Service {
	return &Service{
		deps: deps,
		cfg:  cfg,
		log:  log.With("service", "assistant"),
	}
}

// resolveEmployee matches a name fragment against active employees.
func (s *Service) resolveEmployee(ctx context.Context, fragment string) (Resolution, error) {
	emps, err := s.deps.Employees.List(ctx, domain.ActiveEmployees())
	if err != nil {
		return Resolution{}, err
	}
	records := make([]nameRecord, 0, len(emps))
	for _, e := range emps {
		records = append(records, nameRecord{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName})
	}
	return resolveName(fragment, records, s.cfg.MatchThreshold, s.cfg.AutoSelectScore, s.cfg.MaxSuggestions), nil
}

// resolveCandidate matches a name fragment against candidates, optionally
// narrowed to one pipeline stage.
func (s *Service) resolveCandidate(ctx context.Context, fragment string, stage *domain.PipelineStage) (Resolution, []*domain.Candidate, error) {
	cands, err := s.deps.Candidates.List(ctx, stage)
	if err != nil {
		return Resolution{}, nil, err
	}
	records := make([]nameRecord, 0, len(cands))
	for _, c := range cands {
		records = append(records, nameRecord{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName})
	}
	return resolveName(fragment, records, s.cfg.MatchThreshold, s.cfg.AutoSelectScore, s.cfg.MaxSuggestions), cands, nil
}
