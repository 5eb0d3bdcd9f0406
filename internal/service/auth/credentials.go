package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// dummyPassword is hashed once at startup. Sign-ins for unknown usernames
// compare against it so they take as long as a real mismatch.
const dummyPassword = "not-a-real-password-used-for-timing"

// CredentialStore creates users and checks their passwords.
type CredentialStore struct {
	users     store.UserStore
	hasher    PasswordHasher
	dummyHash string
	logger    *slog.Logger
}

// NewCredentialStore creates a CredentialStore. If logger is nil, a default logger will be used.
func NewCredentialStore(
	users store.UserStore,
	hasher PasswordHasher,
	logger *slog.Logger,
) (*CredentialStore, error) {
	if users == nil {
		return nil, errors.New("users cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credential store: %w", err)
	}

	return &CredentialStore{
		users:     users,
		hasher:    hasher,
		dummyHash: dummyHash,
		logger:    logger.With(slog.String("component", "credential_store")),
	}, nil
}

// CreateUser registers username with password and returns the new user's ID.
// It fails with ErrUsernameTaken when the username is already registered.
func (c *CredentialStore) CreateUser(ctx context.Context, username, password string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if strings.TrimSpace(username) == "" {
		return uuid.Nil, domain.NewValidationError("username", "cannot be empty", domain.ErrEmptyUsername)
	}
	if err := domain.ValidatePlaintextPassword(password); err != nil {
		if errors.Is(err, domain.ErrPasswordTooLong) {
			return uuid.Nil, domain.NewValidationError("password", "must be at most 72 bytes long", err)
		}
		return uuid.Nil, domain.NewValidationError("password", "cannot be empty", err)
	}

	hash, err := c.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	user, err := domain.NewUser(username, hash)
	if err != nil {
		return uuid.Nil, err
	}

	if err := c.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("sign up rejected: username taken")
			return uuid.Nil, ErrUsernameTaken
		}
		log.Error("failed to persist user", slog.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%w: create user: %w", domain.ErrPersistence, err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return user.ID, nil
}

// VerifyUser checks password against the stored hash for username. Unknown
// users and wrong passwords both yield domain.ErrAuthentication.
func (c *CredentialStore) VerifyUser(ctx context.Context, username, password string) (domain.Identity, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	user, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.hasher.Compare(c.dummyHash, password)
			log.Debug("sign in rejected: unknown username")
			return domain.Identity{}, domain.ErrAuthentication
		}
		log.Error("failed to load user for sign in", slog.String("error", err.Error()))
		return domain.Identity{}, fmt.Errorf("%w: load user: %w", domain.ErrPersistence, err)
	}

	if err := c.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Debug("sign in rejected: password mismatch", slog.String("user_id", user.ID.String()))
		return domain.Identity{}, domain.ErrAuthentication
	}

	return domain.Identity{UserID: user.ID, Username: user.Username}, nil
}
