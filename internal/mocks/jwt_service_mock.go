package mocks

import (
	"context"

	"github.com/servicereview/service-review-api/internal/service/auth"
)

// MockJWTService is a configurable test double for auth.JWTService.
type MockJWTService struct {
	// Token is returned by IssueToken when Err is nil.
	Token string

	// Claims is returned by ValidateToken when Err is nil.
	Claims *auth.Claims

	// Err, when set, is returned by both methods.
	Err error

	// IssuedEmail records the last email passed to IssueToken.
	IssuedEmail string
}

var _ auth.JWTService = (*MockJWTService)(nil)

// IssueToken implements auth.JWTService.IssueToken.
func (m *MockJWTService) IssueToken(
	ctx context.Context,
	email string,
	custom map[string]interface{},
) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.IssuedEmail = email
	return m.Token, nil
}

// ValidateToken implements auth.JWTService.ValidateToken.
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return &auth.Claims{Email: "test@example.com"}, nil
}
