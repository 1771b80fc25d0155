package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Roof-ER21/roof-hr-sub000/internal/auth"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

type mockEmployeeRepo struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetAccountByEmailFunc func(ctx context.Context, email string) (*domain.Account, error)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEmployeeRepo) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetAccountByEmailFunc != nil {
		return m.GetAccountByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

type mockJWTManager struct {
	GenerateAccessTokenFunc func(employeeID uuid.UUID, role domain.Role, dept domain.Department) (string, error)
	ValidateAccessTokenFunc func(token string) (auth.TokenClaims, error)
}

func (m *mockJWTManager) GenerateAccessToken(employeeID uuid.UUID, role domain.Role, dept domain.Department) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(employeeID, role, dept)
	}
	return "signed-token", nil
}

func (m *mockJWTManager) ValidateAccessToken(token string) (auth.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return auth.TokenClaims{}, errors.New("invalid token")
}

type testDeps struct {
	employees *mockEmployeeRepo
	jwt       *mockJWTManager
}

func newTestService() (*Service, *testDeps) {
	d := &testDeps{
		employees: &mockEmployeeRepo{},
		jwt:       &mockJWTManager{},
	}
	return NewService(slog.Default(), d.employees, d.jwt), d
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	employeeID := uuid.New()
	deps.employees.GetAccountByEmailFunc = func(_ context.Context, email string) (*domain.Account, error) {
		assert.Equal(t, "dana@roofer.example", email)
		return &domain.Account{
			EmployeeID:   employeeID,
			Email:        email,
			PasswordHash: hashOf(t, "hunter2hunter2"),
		}, nil
	}
	deps.employees.GetByIDFunc = func(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
		return &domain.Employee{
			ID:         employeeID,
			FirstName:  "Dana",
			LastName:   "Ops",
			Email:      "dana@roofer.example",
			Role:       domain.RoleHR,
			Department: domain.DepartmentHR,
			Status:     domain.EmploymentActive,
			HireDate:   time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		}, nil
	}

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "  Dana@Roofer.example ",
		Password: "hunter2hunter2",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.AccessToken)
	assert.Equal(t, employeeID, result.Employee.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.employees.GetAccountByEmailFunc = func(_ context.Context, email string) (*domain.Account, error) {
		return &domain.Account{
			EmployeeID:   uuid.New(),
			Email:        email,
			PasswordHash: hashOf(t, "correct-password"),
		}, nil
	}

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "dana@roofer.example",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@roofer.example",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_TerminatedEmployeeRefused(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	employeeID := uuid.New()
	deps.employees.GetAccountByEmailFunc = func(_ context.Context, email string) (*domain.Account, error) {
		return &domain.Account{
			EmployeeID:   employeeID,
			Email:        email,
			PasswordHash: hashOf(t, "hunter2hunter2"),
		}, nil
	}
	deps.employees.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Employee, error) {
		return &domain.Employee{ID: employeeID, Status: domain.EmploymentTerminated}, nil
	}

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "former@roofer.example",
		Password: "hunter2hunter2",
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InvalidInput(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), LoginInput{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	employeeID := uuid.New()
	deps.jwt.ValidateAccessTokenFunc = func(token string) (auth.TokenClaims, error) {
		if token == "good" {
			return auth.TokenClaims{EmployeeID: employeeID, Role: domain.RoleAgent}, nil
		}
		return auth.TokenClaims{}, errors.New("bad signature")
	}

	id, err := svc.ValidateToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, employeeID, id)

	_, err = svc.ValidateToken(context.Background(), "tampered")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
