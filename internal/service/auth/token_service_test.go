package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func mustTokenService(t *testing.T, secret string, now time.Time) *hmacTokenService {
	t.Helper()
	svc, err := newTokenService(secret, time.Hour, fixedClock(now))
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := mustTokenService(t, testSecret, fixedTime)
	identity := domain.Identity{UserID: uuid.New(), Username: "alice"}

	token, err := svc.IssueToken(context.Background(), identity)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	identity := domain.Identity{UserID: uuid.New(), Username: "alice"}

	issue := func(t *testing.T) string {
		token, err := mustTokenService(t, testSecret, issuedAt).IssueToken(context.Background(), identity)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name     string
		verifyAt time.Time
		secret   string
		token    func(t *testing.T) string
		wantErr  error
	}{
		{
			name:     "valid just before expiry",
			verifyAt: issuedAt.Add(59 * time.Minute),
			secret:   testSecret,
			token:    issue,
		},
		{
			name:     "expired",
			verifyAt: issuedAt.Add(61 * time.Minute),
			secret:   testSecret,
			token:    issue,
			wantErr:  ErrExpiredToken,
		},
		{
			name:     "wrong secret",
			verifyAt: issuedAt,
			secret:   wrongSecret,
			token:    issue,
			wantErr:  domain.ErrInvalidToken,
		},
		{
			name:     "tampered payload",
			verifyAt: issuedAt,
			secret:   testSecret,
			token: func(t *testing.T) string {
				parts := strings.Split(issue(t), ".")
				other, err := mustTokenService(t, testSecret, issuedAt).IssueToken(
					context.Background(), domain.Identity{UserID: uuid.New(), Username: "mallory"})
				require.NoError(t, err)
				parts[1] = strings.Split(other, ".")[1]
				return strings.Join(parts, ".")
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name:     "malformed",
			verifyAt: issuedAt,
			secret:   testSecret,
			token:    func(t *testing.T) string { return "not.a.token" },
			wantErr:  domain.ErrInvalidToken,
		},
		{
			name:     "empty",
			verifyAt: issuedAt,
			secret:   testSecret,
			token:    func(t *testing.T) string { return "" },
			wantErr:  ErrMissingToken,
		},
		{
			name:     "unsigned alg none",
			verifyAt: issuedAt,
			secret:   testSecret,
			token: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
					Username: "alice",
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   identity.UserID.String(),
						ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
					},
				})
				signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return signed
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name:     "no expiry",
			verifyAt: issuedAt,
			secret:   testSecret,
			token: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: identity.UserID.String()},
				})
				signed, err := token.SignedString([]byte(testSecret))
				require.NoError(t, err)
				return signed
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name:     "not yet valid",
			verifyAt: issuedAt,
			secret:   testSecret,
			token: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
					Username: "alice",
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   identity.UserID.String(),
						NotBefore: jwt.NewNumericDate(issuedAt.Add(10 * time.Minute)),
						ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
					},
				})
				signed, err := token.SignedString([]byte(testSecret))
				require.NoError(t, err)
				return signed
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name:     "subject is not a uuid",
			verifyAt: issuedAt,
			secret:   testSecret,
			token: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "alice",
						ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
					},
				})
				signed, err := token.SignedString([]byte(testSecret))
				require.NoError(t, err)
				return signed
			},
			wantErr: domain.ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			token := tc.token(t)
			svc := mustTokenService(t, tc.secret, tc.verifyAt)

			claims, err := svc.VerifyToken(context.Background(), token)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, identity.UserID, claims.UserID)
				return
			}
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}
