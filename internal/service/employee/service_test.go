package employee

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockEmployeeRepo struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Employee, error)
	ListFunc       func(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error)
	CreateFunc     func(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	UpdateFunc     func(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	TerminateFunc  func(ctx context.Context, id uuid.UUID, when time.Time) error
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEmployeeRepo) List(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

func (m *mockEmployeeRepo) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return e, nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return e, nil
}

func (m *mockEmployeeRepo) Terminate(ctx context.Context, id uuid.UUID, when time.Time) error {
	if m.TerminateFunc != nil {
		return m.TerminateFunc(ctx, id, when)
	}
	return nil
}

type mockToolRepo struct {
	ListByHolderFunc func(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error)
}

func (m *mockToolRepo) ListByHolder(ctx context.Context, employeeID uuid.UUID) ([]*domain.Tool, error) {
	if m.ListByHolderFunc != nil {
		return m.ListByHolderFunc(ctx, employeeID)
	}
	return nil, nil
}

type mockNotifier struct {
	SendFunc func(ctx context.Context, to, subject, body string) error
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	employees *mockEmployeeRepo
	tools     *mockToolRepo
	notify    *mockNotifier
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		employees: &mockEmployeeRepo{},
		tools:     &mockToolRepo{},
		notify:    &mockNotifier{},
	}
	svc := NewService(slog.Default(), deps.employees, deps.tools, deps.notify)
	return svc, deps
}

func actorCtx(role domain.Role) (context.Context, domain.Actor) {
	actor := domain.Actor{
		ID:         uuid.New(),
		Role:       role,
		Department: domain.DepartmentOffice,
		Status:     domain.EmploymentActive,
		FirstName:  "Test",
		LastName:   "Actor",
	}
	return ctxutil.WithActor(context.Background(), actor), actor
}

func validCreateInput() CreateInput {
	return CreateInput{
		FirstName:  "Maria",
		LastName:   "Lopez",
		Email:      "maria.lopez@example.com",
		Role:       domain.RoleAgent,
		Department: domain.DepartmentSales,
		HireDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

// ===========================================================================
// Create
// ===========================================================================

func TestService_Create_OK(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := actorCtx(domain.RoleHR)

	deps.employees.CreateFunc = func(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.Equal(t, "maria.lopez@example.com", e.Email)
		assert.Equal(t, domain.EmploymentActive, e.Status)
		return e, nil
	}

	emp, err := svc.Create(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", emp.FullName())
}

func TestService_Create_NoActor(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateInput())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Create_Forbidden(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx, _ := actorCtx(domain.RoleAgent)

	_, err := svc.Create(ctx, validCreateInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_Create_InvalidInput(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx, _ := actorCtx(domain.RoleAdmin)

	input := validCreateInput()
	input.FirstName = ""
	input.Email = "not-an-address"

	_, err := svc.Create(ctx, input)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 2)
}

// ===========================================================================
// Update
// ===========================================================================

func TestService_Update_PartialFields(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := actorCtx(domain.RoleHR)

	id := uuid.New()
	deps.employees.GetByIDFunc = func(_ context.Context, got uuid.UUID) (*domain.Employee, error) {
		assert.Equal(t, id, got)
		return &domain.Employee{
			ID:         id,
			FirstName:  "Sam",
			LastName:   "Reed",
			Role:       domain.RoleAgent,
			Department: domain.DepartmentSales,
			Status:     domain.EmploymentActive,
		}, nil
	}

	newRole := domain.RoleManager
	deps.employees.UpdateFunc = func(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
		assert.Equal(t, domain.RoleManager, e.Role)
		assert.Equal(t, domain.DepartmentSales, e.Department)
		return e, nil
	}

	updated, err := svc.Update(ctx, UpdateInput{EmployeeID: id, Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, updated.Role)
}

func TestService_Update_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx, _ := actorCtx(domain.RoleAdmin)

	_, err := svc.Update(ctx, UpdateInput{EmployeeID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// Get / List
// ===========================================================================

func TestService_Get_OwnRecord(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, actor := actorCtx(domain.RoleAgent)

	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		return &domain.Employee{ID: id, FirstName: "Test", LastName: "Actor"}, nil
	}

	emp, err := svc.Get(ctx, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, emp.ID)
}

func TestService_Get_OtherRecordForbidden(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()
	ctx, _ := actorCtx(domain.RoleAgent)

	_, err := svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_List_ManagerAllowed(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := actorCtx(domain.RoleManager)

	dept := domain.DepartmentSales
	deps.employees.ListFunc = func(_ context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error) {
		require.NotNil(t, f.Department)
		assert.Equal(t, dept, *f.Department)
		return []*domain.Employee{{ID: uuid.New()}}, nil
	}

	emps, err := svc.List(ctx, domain.EmployeeFilter{Department: &dept})
	require.NoError(t, err)
	assert.Len(t, emps, 1)
}

// ===========================================================================
// Terminate
// ===========================================================================

func TestService_Terminate_SendsToolReminder(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := actorCtx(domain.RoleHR)

	managerID := uuid.New()
	empID := uuid.New()

	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		if id == managerID {
			return &domain.Employee{ID: managerID, Email: "boss@example.com"}, nil
		}
		return &domain.Employee{
			ID:        empID,
			FirstName: "Gone",
			LastName:  "Agent",
			ManagerID: &managerID,
			Status:    domain.EmploymentActive,
		}, nil
	}
	deps.tools.ListByHolderFunc = func(_ context.Context, id uuid.UUID) ([]*domain.Tool, error) {
		return []*domain.Tool{{ID: uuid.New(), Name: "Ladder", AssetTag: "LAD-004"}}, nil
	}

	var sentTo string
	deps.notify.SendFunc = func(_ context.Context, to, subject, body string) error {
		sentTo = to
		assert.Contains(t, body, "LAD-004")
		return nil
	}

	err := svc.Terminate(ctx, TerminateInput{EmployeeID: empID, EffectiveDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", sentTo)
}

func TestService_Terminate_AlreadyTerminated(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := actorCtx(domain.RoleAdmin)

	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		return &domain.Employee{ID: id, Status: domain.EmploymentTerminated}, nil
	}

	err := svc.Terminate(ctx, TerminateInput{EmployeeID: uuid.New(), EffectiveDate: time.Now()})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_Terminate_NotifyFailureIgnored(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()
	ctx, _ := actorCtx(domain.RoleHR)

	managerID := uuid.New()
	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		return &domain.Employee{ID: id, ManagerID: &managerID, Status: domain.EmploymentActive}, nil
	}
	deps.tools.ListByHolderFunc = func(_ context.Context, id uuid.UUID) ([]*domain.Tool, error) {
		return []*domain.Tool{{Name: "Drill", AssetTag: "DRL-001"}}, nil
	}
	deps.notify.SendFunc = func(_ context.Context, _, _, _ string) error {
		return errors.New("smtp down")
	}

	err := svc.Terminate(ctx, TerminateInput{EmployeeID: uuid.New(), EffectiveDate: time.Now()})
	require.NoError(t, err)
}
