package assistant

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roof-ER21/roof-hr-sub000/internal/config"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/employee"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/pto"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockEmployeeDirectory struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	ListFunc    func(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error)
}

func (m *mockEmployeeDirectory) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEmployeeDirectory) List(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

type mockToolingService struct {
	AssignFunc          func(ctx context.Context, toolID, employeeID uuid.UUID) (*domain.Tool, error)
	ReportLostFunc      func(ctx context.Context, toolID uuid.UUID) (*domain.Tool, error)
	ListForEmployeeFunc func(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error)
}

func (m *mockToolingService) Assign(ctx context.Context, toolID, employeeID uuid.UUID) (*domain.Tool, error) {
	if m.AssignFunc != nil {
		return m.AssignFunc(ctx, toolID, employeeID)
	}
	return &domain.Tool{ID: toolID, AssignedTo: &employeeID, Status: domain.ToolAssigned}, nil
}

func (m *mockToolingService) ReportLost(ctx context.Context, toolID uuid.UUID) (*domain.Tool, error) {
	if m.ReportLostFunc != nil {
		return m.ReportLostFunc(ctx, toolID)
	}
	return &domain.Tool{ID: toolID, Status: domain.ToolLost}, nil
}

func (m *mockToolingService) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error) {
	if m.ListForEmployeeFunc != nil {
		return m.ListForEmployeeFunc(ctx, employeeID)
	}
	return nil, nil
}

type mockEmployeeService struct {
	TerminateFunc func(ctx context.Context, input employee.TerminateInput) error
}

func (m *mockEmployeeService) Terminate(ctx context.Context, input employee.TerminateInput) error {
	if m.TerminateFunc != nil {
		return m.TerminateFunc(ctx, input)
	}
	return nil
}

type mockPTOService struct {
	RequestFunc func(ctx context.Context, input pto.RequestInput) (*domain.PTORequest, error)
	DecideFunc  func(ctx context.Context, input pto.DecideInput) (*domain.PTORequest, error)
	BalanceFunc func(ctx context.Context, employeeID uuid.UUID) (float64, error)
}

func (m *mockPTOService) Request(ctx context.Context, input pto.RequestInput) (*domain.PTORequest, error) {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, input)
	}
	return &domain.PTORequest{
		ID:         uuid.New(),
		EmployeeID: input.EmployeeID,
		Type:       input.Type,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Days:       domain.BusinessDays(input.StartDate, input.EndDate),
		Status:     domain.PTOPending,
	}, nil
}

func (m *mockPTOService) Decide(ctx context.Context, input pto.DecideInput) (*domain.PTORequest, error) {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, input)
	}
	return &domain.PTORequest{ID: input.RequestID, Status: domain.PTOApproved}, nil
}

func (m *mockPTOService) Balance(ctx context.Context, employeeID uuid.UUID) (float64, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, employeeID)
	}
	return 0, nil
}

// mockPendingRepo is an in-memory pending action store with the same
// state-guarded transition semantics as the persistent one.
type mockPendingRepo struct {
	actions map[uuid.UUID]*domain.PendingAction

	CreateFunc func(ctx context.Context, p *domain.PendingAction) (*domain.PendingAction, error)
}

func newMockPendingRepo() *mockPendingRepo {
	return &mockPendingRepo{actions: make(map[uuid.UUID]*domain.PendingAction)}
}

func (m *mockPendingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.PendingAction, error) {
	pa, ok := m.actions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pa
	return &cp, nil
}

func (m *mockPendingRepo) Create(ctx context.Context, p *domain.PendingAction) (*domain.PendingAction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	cp := *p
	m.actions[p.ID] = &cp
	return p, nil
}

func (m *mockPendingRepo) Transition(_ context.Context, id uuid.UUID, from, to domain.PendingState) error {
	pa, ok := m.actions[id]
	if !ok {
		return domain.ErrNotFound
	}
	if pa.State != from {
		return domain.ErrConflict
	}
	pa.State = to
	return nil
}

// ===========================================================================
// Helpers
// ===========================================================================

func testCfg() config.AssistantConfig {
	return config.AssistantConfig{
		MatchThreshold:  0.6,
		AutoSelectScore: 0.95,
		MaxSuggestions:  3,
		ConfirmationTTL: 15 * time.Minute,
	}
}

type dispatcherDeps struct {
	employees   *mockEmployeeDirectory
	toolingSvc  *mockToolingService
	employeeSvc *mockEmployeeService
	ptoSvc      *mockPTOService
	pending     *mockPendingRepo
}

func newTestDispatcher() (*Service, *dispatcherDeps) {
	d := &dispatcherDeps{
		employees:   &mockEmployeeDirectory{},
		toolingSvc:  &mockToolingService{},
		employeeSvc: &mockEmployeeService{},
		ptoSvc:      &mockPTOService{},
		pending:     newMockPendingRepo(),
	}
	svc := NewService(slog.Default(), Deps{
		Employees:   d.employees,
		ToolingSvc:  d.toolingSvc,
		EmployeeSvc: d.employeeSvc,
		PTOSvc:      d.ptoSvc,
		Pending:     d.pending,
	}, testCfg())
	return svc, d
}

func hrActor() domain.Actor {
	return domain.Actor{
		ID:         uuid.New(),
		Role:       domain.RoleHR,
		Department: domain.DepartmentHR,
		Status:     domain.EmploymentActive,
		FirstName:  "Dana",
		LastName:   "Ops",
	}
}

func staff(names ...[2]string) []*domain.Employee {
	emps := make([]*domain.Employee, 0, len(names))
	for _, n := range names {
		emps = append(emps, &domain.Employee{
			ID:         uuid.New(),
			FirstName:  n[0],
			LastName:   n[1],
			Email:      n[0] + "@example.com",
			Role:       domain.RoleAgent,
			Department: domain.DepartmentSales,
			Status:     domain.EmploymentActive,
		})
	}
	return emps
}

// ===========================================================================
// Dispatch
// ===========================================================================

func TestDispatch_GreetingShortCircuits(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		t.Fatal("no domain handler may run for a greeting")
		return nil, nil
	}

	for _, msg := range []string{"hi", "Hello", "  hey  ", "Good morning!", "thanks"} {
		results := svc.Dispatch(context.Background(), ActionContext{Actor: hrActor(), Message: msg})
		assert.Empty(t, results, "message %q", msg)
	}
}

func TestDispatch_MalformedActorShortCircuits(t *testing.T) {
	t.Parallel()
	svc, _ := newTestDispatcher()

	results := svc.Dispatch(context.Background(), ActionContext{
		Actor:   domain.Actor{}, // no id, no role
		Message: "terminate john smith",
	})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "actor context")
}

func TestDispatch_FindEmployeeAutoSelect(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	emps := staff([2]string{"John", "Smith"}, [2]string{"Maria", "Lopez"})
	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return emps, nil
	}
	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		for _, e := range emps {
			if e.ID == id {
				return e, nil
			}
		}
		return nil, domain.ErrNotFound
	}

	results := svc.Dispatch(context.Background(), ActionContext{Actor: hrActor(), Message: "who is John Smith?"})
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, "John Smith", results[0].Data["name"])
}

func TestDispatch_MisspelledNameAsksForConfirmation(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return staff([2]string{"Robert", "Brown"}), nil
	}

	results := svc.Dispatch(context.Background(), ActionContext{Actor: hrActor(), Message: "find employee Robrt"})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, results[0].RequiresConfirmation)
	assert.NotNil(t, results[0].ConfirmationData["suggestions"])
}

func TestDispatch_NoMatchFailsWithoutConfirmationData(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return staff([2]string{"Robert", "Brown"}), nil
	}

	results := svc.Dispatch(context.Background(), ActionContext{Actor: hrActor(), Message: "find employee Xzqw"})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.False(t, results[0].RequiresConfirmation)
	assert.Nil(t, results[0].ConfirmationData)
}

func TestDispatch_TwoDomainsProduceIndependentResults(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	emps := staff([2]string{"John", "Smith"})
	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return emps, nil
	}
	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		return emps[0], nil
	}
	// The tools domain fails; the employee lookup must still succeed.
	deps.toolingSvc.ListForEmployeeFunc = func(_ context.Context, _ uuid.UUID) ([]*domain.Tool, error) {
		return nil, errors.New("inventory store down")
	}

	results := svc.Dispatch(context.Background(), ActionContext{
		Actor:   hrActor(),
		Message: "who is John Smith and what equipment does John Smith have?",
	})
	require.Len(t, results, 2)
	assert.True(t, results[0].Success, "employee lookup result")
	assert.False(t, results[1].Success, "tools result")
	assert.Contains(t, results[1].Error, "inventory store down")
}

func TestDispatch_PermissionDeniedSkipsSilently(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return staff([2]string{"John", "Smith"}), nil
	}

	agent := domain.Actor{
		ID:     uuid.New(),
		Role:   domain.RoleAgent,
		Status: domain.EmploymentActive,
	}
	// An agent cannot terminate; the domain path produces no result at
	// all rather than a permission error.
	results := svc.Dispatch(context.Background(), ActionContext{Actor: agent, Message: "terminate John Smith"})
	assert.Empty(t, results)
}

func TestDispatch_TerminationRequiresConfirmation(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return staff([2]string{"John", "Smith"}), nil
	}

	var terminated bool
	deps.employeeSvc.TerminateFunc = func(_ context.Context, _ employee.TerminateInput) error {
		terminated = true
		return nil
	}

	results := svc.Dispatch(context.Background(), ActionContext{Actor: hrActor(), Message: "terminate John Smith"})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.True(t, results[0].RequiresConfirmation)
	assert.NotEmpty(t, results[0].ConfirmationData["confirmation_id"])
	assert.Equal(t, "employee.terminate", results[0].ConfirmationData["action"])
	assert.False(t, terminated, "nothing executes before confirmation")
}

func TestDispatch_PTORequestParsesRange(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	actor := hrActor()
	var got pto.RequestInput
	deps.ptoSvc.RequestFunc = func(_ context.Context, input pto.RequestInput) (*domain.PTORequest, error) {
		got = input
		return &domain.PTORequest{
			ID:         uuid.New(),
			EmployeeID: input.EmployeeID,
			Type:       input.Type,
			StartDate:  input.StartDate,
			EndDate:    input.EndDate,
			Days:       domain.BusinessDays(input.StartDate, input.EndDate),
			Status:     domain.PTOPending,
		}, nil
	}

	results := svc.Dispatch(context.Background(), ActionContext{
		Actor:   actor,
		Message: "I'd like to request vacation from 10/12 to 10/16",
	})
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, actor.ID, got.EmployeeID)
	assert.Equal(t, domain.PTOVacation, got.Type)
	assert.True(t, got.StartDate.Before(got.EndDate))
}

func TestDispatch_UnparseableDateAsksClarifyingQuestion(t *testing.T) {
	t.Parallel()
	svc, _ := newTestDispatcher()

	results := svc.Dispatch(context.Background(), ActionContext{
		Actor:   hrActor(),
		Message: "I want to take some time off",
	})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Empty(t, results[0].Error, "a clarifying question is not an error")
	assert.Contains(t, results[0].Message, "When")
}
