package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// AuthResult is returned by a successful login.
type AuthResult struct {
	AccessToken string
	Employee    *domain.Employee
}

// Login authenticates an employee with email + password. Returns
// ErrUnauthorized if the email is unknown, the password is wrong, or the
// employee has been terminated. The three cases are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	account, err := s.employees.GetAccountByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	emp, err := s.employees.GetByID(ctx, account.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login get employee: %w", err)
	}
	if emp.Status == domain.EmploymentTerminated {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateAccessToken(emp.ID, emp.Role, emp.Department)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	s.log.InfoContext(ctx, "employee logged in",
		slog.String("employee_id", emp.ID.String()))

	return &AuthResult{AccessToken: token, Employee: emp}, nil
}
