package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TokenPurpose separates session tokens from password reset tokens.
// A token is only accepted for the purpose it was issued for.
type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// Token verification failures.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

// TokenSubject is the identity embedded in a token.
type TokenSubject struct {
	UserID   uuid.UUID
	Username string
	// Fingerprint ties a reset token to the password hash it was issued against.
	Fingerprint string
}

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID      uuid.UUID    `json:"-"`
	Username    string       `json:"username"`
	Purpose     TokenPurpose `json:"purpose"`
	Fingerprint string       `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	// Issue signs a token for subject with the given purpose and lifetime.
	Issue(subject TokenSubject, purpose TokenPurpose, ttl time.Duration) (*IssuedToken, error)

	// Verify checks signature, expiry and purpose.
	// It fails with ErrInvalidToken, ErrExpiredToken or ErrWrongPurpose.
	Verify(token string, expected TokenPurpose) (*Claims, error)

	// SessionTTL returns the configured lifetime of session tokens.
	SessionTTL() time.Duration

	// ResetTTL returns the configured lifetime of password reset tokens.
	ResetTTL() time.Duration
}
