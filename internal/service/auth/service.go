package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Service is the account-facing entry point: registration, sign in and
// resolving a bearer token back into an identity.
type Service interface {
	// SignUp registers a new user. Duplicate usernames fail with domain.ErrConflict.
	SignUp(ctx context.Context, username, password string) error

	// SignIn returns an access token for valid credentials, or
	// domain.ErrAuthentication.
	SignIn(ctx context.Context, username, password string) (string, error)

	// Authenticate verifies token and confirms its subject still exists.
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type authService struct {
	credentials *CredentialStore
	tokens      TokenService
	users       store.UserStore
	logger      *slog.Logger
}

var _ Service = (*authService)(nil)

// NewService wires a Service from its collaborators.
func NewService(
	credentials *CredentialStore,
	tokens TokenService,
	users store.UserStore,
	logger *slog.Logger,
) (Service, error) {
	if credentials == nil {
		return nil, errors.New("credentials cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("tokens cannot be nil")
	}
	if users == nil {
		return nil, errors.New("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		credentials: credentials,
		tokens:      tokens,
		users:       users,
		logger:      logger.With(slog.String("component", "auth_service")),
	}, nil
}

// SignUp implements Service.
func (s *authService) SignUp(ctx context.Context, username, password string) error {
	_, err := s.credentials.CreateUser(ctx, username, password)
	return err
}

// SignIn implements Service.
func (s *authService) SignIn(ctx context.Context, username, password string) (string, error) {
	identity, err := s.credentials.VerifyUser(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssueToken(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user signed in",
		slog.String("user_id", identity.UserID.String()))
	return token, nil
}

// Authenticate implements Service.
func (s *authService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.VerifyToken(ctx, token)
	if err != nil {
		return domain.Identity{}, err
	}

	identity := claims.Identity()
	if _, err := s.users.GetByID(ctx, identity.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("token subject no longer exists", slog.String("user_id", claims.UserID.String()))
			return domain.Identity{}, ErrUnknownSubject
		}
		log.Error("failed to load token subject", slog.String("error", err.Error()))
		return domain.Identity{}, fmt.Errorf("%w: load user: %w", domain.ErrPersistence, err)
	}

	return identity, nil
}
