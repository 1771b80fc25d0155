package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// JWTManager handles access token generation and validation.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// TokenClaims is what a validated access token asserts about the caller.
type TokenClaims struct {
	EmployeeID uuid.UUID
	Role       domain.Role
	Department domain.Department
}

// accessClaims extends standard JWT claims with role and department.
type accessClaims struct {
	jwt.RegisteredClaims
	Role       string `json:"role,omitempty"`
	Department string `json:"dept,omitempty"`
}

// GenerateAccessToken creates a signed HS256 JWT with the employee ID as
// subject plus role and department custom claims.
func (m *JWTManager) GenerateAccessToken(employeeID uuid.UUID, role domain.Role, dept domain.Department) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role:       role.String(),
		Department: dept.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and validates a JWT access token.
func (m *JWTManager) ValidateAccessToken(tokenString string) (TokenClaims, error) {
	if tokenString == "" {
		return TokenClaims{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return TokenClaims{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != m.issuer {
		return TokenClaims{}, fmt.Errorf("invalid issuer: expected %s, got %s", m.issuer, claims.Issuer)
	}

	employeeID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return TokenClaims{}, fmt.Errorf("invalid subject UUID: %w", err)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return TokenClaims{}, fmt.Errorf("invalid role claim: %q", claims.Role)
	}

	return TokenClaims{
		EmployeeID: employeeID,
		Role:       role,
		Department: domain.Department(claims.Department),
	}, nil
}
