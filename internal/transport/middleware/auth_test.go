package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

type actorLoaderStub struct {
	emp *domain.Employee
	err error
}

func (s *actorLoaderStub) GetByID(_ context.Context, _ uuid.UUID) (*domain.Employee, error) {
	return s.emp, s.err
}

func activeEmployee(id uuid.UUID) *domain.Employee {
	return &domain.Employee{
		ID:        id,
		FirstName: "Dana",
		LastName:  "Ops",
		Email:     "dana@roofer.example",
		Role:      domain.RoleHR,
		Status:    domain.EmploymentActive,
	}
}

func TestAuth_ValidToken(t *testing.T) {
	employeeID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			if token == "valid-token" {
				return employeeID, nil
			}
			return uuid.Nil, errors.New("invalid token")
		},
	}
	employees := &actorLoaderStub{emp: activeEmployee(employeeID)}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ctxutil.ActorFromCtx(r.Context())
		if !ok {
			t.Error("expected actor in context")
			return
		}
		if actor.ID != employeeID {
			t.Errorf("expected actor ID %v, got %v", employeeID, actor.ID)
		}
		if actor.Role != domain.RoleHR {
			t.Errorf("expected role %v, got %v", domain.RoleHR, actor.Role)
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator, employees)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			return uuid.Nil, errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for invalid token")
	})

	wrappedHandler := Auth(validator, &actorLoaderStub{})(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_TerminatedEmployeeRejected(t *testing.T) {
	employeeID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			return employeeID, nil
		},
	}
	former := activeEmployee(employeeID)
	former.Status = domain.EmploymentTerminated

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for a terminated employee")
	})

	wrappedHandler := Auth(validator, &actorLoaderStub{emp: former})(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_UnknownEmployeeRejected(t *testing.T) {
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			return uuid.New(), nil
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called when the employee record is gone")
	})

	wrappedHandler := Auth(validator, &actorLoaderStub{err: domain.ErrNotFound})(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuth_NoAuthHeader(t *testing.T) {
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			t.Error("ValidateToken should not be called when no header present")
			return uuid.Nil, errors.New("should not be called")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.ActorFromCtx(r.Context()); ok {
			t.Error("expected no actor in context for anonymous request")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator, &actorLoaderStub{})(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if len(validator.ValidateTokenCalls()) > 0 {
		t.Error("ValidateToken should not be called for anonymous request")
	}
}

func TestAuth_NonBearerToken(t *testing.T) {
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			t.Error("ValidateToken should not be called for non-Bearer token")
			return uuid.Nil, errors.New("should not be called")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.ActorFromCtx(r.Context()); ok {
			t.Error("expected no actor in context for non-Bearer auth")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(validator, &actorLoaderStub{})(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if len(validator.ValidateTokenCalls()) > 0 {
		t.Error("ValidateToken should not be called for non-Bearer token")
	}
}

func TestRequireActor(t *testing.T) {
	if _, err := RequireActor(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	want := domain.Actor{ID: uuid.New(), Role: domain.RoleManager}
	ctx := ctxutil.WithActor(context.Background(), want)
	got, err := RequireActor(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("expected actor %v, got %v", want.ID, got.ID)
	}
}

func TestExtractBearerToken_Cases(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", ""},
		{"bearer with token", "Bearer valid-token", "valid-token"},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"bearer no space", "Bearertoken", ""},
		{"bearer empty token", "Bearer ", ""},
		{"just bearer", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			got := extractBearerToken(req)
			if got != tc.want {
				t.Errorf("extractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
