package auth

import (
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// Token failures. All of them match domain.ErrInvalidToken.
var (
	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: token has expired", domain.ErrInvalidToken)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: token not yet valid", domain.ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = fmt.Errorf("%w: token is missing", domain.ErrInvalidToken)

	// ErrUnknownSubject indicates the token is genuine but its user no longer exists
	ErrUnknownSubject = fmt.Errorf("%w: subject does not exist", domain.ErrInvalidToken)
)

// ErrUsernameTaken is returned by sign up when the username is already registered.
var ErrUsernameTaken = fmt.Errorf("%w: username already exists", domain.ErrConflict)
