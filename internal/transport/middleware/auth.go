package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type actorLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// Auth validates the bearer token, loads the employee behind it and
// attaches the actor to the request context. Requests without a token
// pass through anonymously; handlers that need an actor reject those
// themselves. Tokens of terminated employees are refused outright.
func Auth(validator tokenValidator, employees actorLoader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			employeeID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			emp, err := employees.GetByID(r.Context(), employeeID)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if emp.Status == domain.EmploymentTerminated {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithActor(r.Context(), domain.ActorFromEmployee(emp))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// RequireActor returns the context actor or domain.ErrUnauthorized.
// Use in REST handlers behind Auth, not as HTTP middleware.
func RequireActor(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}
