// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"inventory/internal/delivery/api/middleware"
	"inventory/internal/delivery/api/response"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/entity"
	"inventory/internal/errors"
	"inventory/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=100"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required"`
	ID       string `json:"id" validate:"required,uuid"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *entity.User `json:"user"`
}

// AuthHandler serves the account endpoints.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register creates an account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		Token:     output.Token,
		ExpiresIn: output.ExpiresIn,
		User:      output.User,
	})
}

// ResetPassword mails a reset link to the account's address.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.RequestPasswordReset(c.Request().Context(), &usecase.PasswordResetInput{Email: req.Email})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Email sent")
}

// ChangePassword sets a new password using the reset token sent by mail.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	token, ok := middleware.BearerToken(c.Request())
	if !ok {
		return domainerrors.ErrResetTokenMissing
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.ID)
	if err != nil {
		return domainerrors.ErrInvalidID.WrapMessage(err.Error())
	}

	err = h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		UserID:   userID,
		Password: req.Password,
		Token:    token,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Password updated")
}
