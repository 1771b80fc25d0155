// Package auth implements credential login and bearer token validation.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/auth"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// employeeRepo defines the employee repository interface needed by auth service.
type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// jwtManager defines the token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(employeeID uuid.UUID, role domain.Role, dept domain.Department) (string, error)
	ValidateAccessToken(token string) (auth.TokenClaims, error)
}

// Service implements auth operations.
type Service struct {
	log       *slog.Logger
	employees employeeRepo
	jwt       jwtManager
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, employees employeeRepo, jwt jwtManager) *Service {
	return &Service{
		log:       logger.With("service", "auth"),
		employees: employees,
		jwt:       jwt,
	}
}

// ValidateToken checks a bearer token and returns the employee ID it
// asserts. Satisfies the transport middleware's validator interface.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return claims.EmployeeID, nil
}
