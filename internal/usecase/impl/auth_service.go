// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"inventory/config"
	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	"inventory/internal/errors"
	"inventory/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const resetMailSubject = "Reset your password"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	resetURL     string
	now          func() time.Time
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	resetURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		resetURL = params.Config.Mail.ResetURL
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		resetURL:     resetURL,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register checks both unique fields, hashes the password and stores the user
// in one transaction.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "username, email and password are required")
	}

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureAvailable(ctx, userRepo, input); err != nil {
			return err
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		now := srv.now()
		user := &entity.User{
			ID:           uuid.New(),
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return mapUserWriteError(err)
		}
		registered = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Info("User registered", slog.String("userID", registered.ID.String()))

	return registered, nil
}

// ensureAvailable reports the first conflict found, username before email.
func ensureAvailable(ctx context.Context, userRepo repository.UserRepository, input *usecase.RegisterInput) error {
	_, err := userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return errors.WithStack(domainerrors.ErrUsernameTaken)
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to check username")
	}

	_, err = userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return errors.WithStack(domainerrors.ErrEmailTaken)
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to check email")
	}

	return nil
}

// mapUserWriteError turns the unique-constraint backstop into conflict errors.
func mapUserWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return errors.WithStack(domainerrors.ErrUsernameTaken)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.WithStack(domainerrors.ErrEmailTaken)
	default:
		return errors.Wrap(err, "failed to create user")
	}
}

// Login returns the same error for an unknown username and a wrong password.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.String("reason", "unknown user"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.String("reason", "password mismatch"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	ttl := srv.tokenService.SessionTTL()
	issued, err := srv.tokenService.Issue(service.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
	}, service.PurposeSession, ttl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("User logged in", slog.String("userID", user.ID.String()))

	return &usecase.LoginOutput{
		Token:     issued.Token,
		ExpiresIn: int64(ttl / time.Second),
		User:      user,
	}, nil
}

// RequestPasswordReset mails a single-use link to the account owner.
func (srv *authService) RequestPasswordReset(ctx context.Context, input *usecase.PasswordResetInput) error {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "no account for email")
		}

		return errors.Wrap(err, "failed to load user for password reset")
	}

	issued, err := srv.tokenService.Issue(service.TokenSubject{
		UserID:      user.ID,
		Username:    user.Username,
		Fingerprint: srv.hasher.Fingerprint(user.PasswordHash),
	}, service.PurposePasswordReset, srv.tokenService.ResetTTL())
	if err != nil {
		return errors.Wrap(err, "failed to issue reset token")
	}

	link, err := buildResetLink(srv.resetURL, issued.Token, user.ID)
	if err != nil {
		return err
	}

	msg := &service.MailMessage{
		To:      user.Email,
		Subject: resetMailSubject,
		Text: "A password reset was requested for " + user.Username + ".\n\n" +
			"Open this link to choose a new password:\n" + link + "\n\n" +
			"The link expires at " + issued.ExpiresAt.Format(time.RFC1123) + ".",
	}
	if err := srv.mailer.Send(ctx, msg); err != nil {
		srv.log(ctx).Error("Failed to send reset email", slog.String("userID", user.ID.String()), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrMailDelivery, err.Error())
	}

	srv.log(ctx).Info("Password reset email sent", slog.String("userID", user.ID.String()))

	return nil
}

// buildResetLink appends token and id to base, keeping any query it already has.
func buildResetLink(base, token string, userID uuid.UUID) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "invalid mail.resetUrl")
	}

	query := u.Query()
	query.Set("token", token)
	query.Set("id", userID.String())
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// ChangePassword accepts a reset token only for the user it names and only
// while the password it was issued against is still current.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	if input.Token == "" {
		return errors.WithStack(domainerrors.ErrResetTokenMissing)
	}

	claims, err := srv.tokenService.Verify(input.Token, service.PurposePasswordReset)
	if err != nil {
		if errors.Is(err, service.ErrExpiredToken) {
			return errors.Wrap(domainerrors.ErrResetTokenExpired, err.Error())
		}

		return errors.Wrap(domainerrors.ErrInvalidResetToken, err.Error())
	}

	if claims.UserID != input.UserID {
		return errors.Wrap(domainerrors.ErrInvalidResetToken, "token subject does not match id")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "reset target missing")
		}

		return errors.Wrap(err, "failed to load user for password change")
	}

	if claims.Fingerprint != srv.hasher.Fingerprint(user.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidResetToken, "token already used")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	if err := srv.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "reset target missing")
		}

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.String("userID", user.ID.String()))

	return nil
}

// Authenticate verifies a session token and loads its user.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.WithStack(domainerrors.ErrTokenMissing)
	}

	claims, err := srv.tokenService.Verify(token, service.PurposeSession)
	if err != nil {
		if errors.Is(err, service.ErrExpiredToken) {
			return nil, errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "token subject missing")
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}
