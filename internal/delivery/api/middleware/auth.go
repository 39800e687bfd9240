package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "inventory/internal/delivery/context"
	requestmiddleware "inventory/internal/delivery/middleware"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/errors"
	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves session bearer tokens to users.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate rejects requests without a valid session token and stores
// the token's user for the handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c.Request())
		if !ok {
			return domainerrors.ErrTokenMissing
		}

		ctx := c.Request().Context()
		user, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetUser(c, user)

		requestmiddleware.AnnotateLogger(c, slog.String("user_id", user.ID.String()))

		return next(c)
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, bearerPrefix)
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}

	return token, true
}
