// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"inventory/config"
	"inventory/internal/domain/service"
	"inventory/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	svc := &jwtService{
		secret:     []byte(cfg.SecretKey.Token),
		sessionTTL: time.Hour,
		resetTTL:   10 * time.Minute,
		issuer:     cfg.Env.ServiceName,
		now:        time.Now,
	}
	if cfg.Auth != nil {
		if cfg.Auth.SessionTTL > 0 {
			svc.sessionTTL = cfg.Auth.SessionTTL
		}
		if cfg.Auth.ResetTTL > 0 {
			svc.resetTTL = cfg.Auth.ResetTTL
		}
	}

	return svc, nil
}

// Issue creates a signed token for the subject.
func (s *jwtService) Issue(subject service.TokenSubject, purpose service.TokenPurpose, ttl time.Duration) (*service.IssuedToken, error) {
	if subject.UserID == uuid.Nil {
		return nil, errors.New("token subject is required")
	}
	if ttl <= 0 {
		return nil, errors.Errorf("token ttl must be positive, got %s", ttl)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)

	claims := &service.Claims{
		Username:    subject.Username,
		Purpose:     purpose,
		Fingerprint: subject.Fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &service.IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify parses the token and checks signature, expiry and purpose.
func (s *jwtService) Verify(tokenString string, expected service.TokenPurpose) (*service.Claims, error) {
	claims := &service.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrExpiredToken, err.Error())
		}

		return nil, errors.Wrap(service.ErrInvalidToken, err.Error())
	}

	if claims.Purpose != expected {
		return nil, errors.Wrapf(service.ErrWrongPurpose, "expected %s, got %s", expected, claims.Purpose)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrInvalidToken, "subject is not a valid user ID")
	}
	claims.UserID = userID

	return claims, nil
}

// SessionTTL returns the configured lifetime of session tokens.
func (s *jwtService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// ResetTTL returns the configured lifetime of password reset tokens.
func (s *jwtService) ResetTTL() time.Duration {
	return s.resetTTL
}
