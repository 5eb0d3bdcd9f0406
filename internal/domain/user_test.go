package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "$2a$04$hash")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$04$hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = NewUser("", "$2a$04$hash")
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = NewUser("alice", "")
	assert.ErrorIs(t, err, ErrEmptyHashedPassword)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidatePlaintextPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "short password is fine", password: "pw123", wantErr: nil},
		{name: "exactly 72 bytes", password: strings.Repeat("a", 72), wantErr: nil},
		{name: "empty", password: "", wantErr: ErrEmptyPassword},
		{name: "too long", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePlaintextPassword(tc.password)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "cannot be empty", nil)
	assert.Equal(t, "title cannot be empty", err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	wrapped := NewValidationError("status", "is invalid", ErrInvalidStatus)
	assert.ErrorIs(t, wrapped, ErrInvalidStatus)
	assert.ErrorIs(t, wrapped, ErrValidation)
}
