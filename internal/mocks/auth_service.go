package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// MockAuthService implements auth.Service for testing
type MockAuthService struct {
	SignUpFn       func(ctx context.Context, username, password string) error
	SignInFn       func(ctx context.Context, username, password string) (string, error)
	AuthenticateFn func(ctx context.Context, token string) (domain.Identity, error)

	// Default values used when functions aren't explicitly defined
	Token    string
	Identity domain.Identity
	Err      error
}

// SignUp implements auth.Service
func (m *MockAuthService) SignUp(ctx context.Context, username, password string) error {
	if m.SignUpFn != nil {
		return m.SignUpFn(ctx, username, password)
	}
	return m.Err
}

// SignIn implements auth.Service
func (m *MockAuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	if m.SignInFn != nil {
		return m.SignInFn(ctx, username, password)
	}
	return m.Token, m.Err
}

// Authenticate implements auth.Service
func (m *MockAuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, token)
	}
	return m.Identity, m.Err
}
