package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

const resetSentMessage = "If the email exists, a reset link has been sent."

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /auth/password/request
// Always responds with the same message so emails cannot be enumerated.
func (h *Handler) RequestPasswordReset(c echo.Context) error {
	req := new(RequestPasswordResetRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if err := c.Validate(req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	acct, err := h.store.FindByEmail(ctx, req.Email)
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		return c.JSON(http.StatusOK, echo.Map{"message": resetSentMessage})
	case err != nil:
		return err
	}

	token, err := h.tokens.IssueReset(acct.ID, acct.PasswordHash)
	if err != nil {
		return apperr.Internal("token generation failed", err)
	}
	if err := h.resets.PasswordReset(ctx, acct.ID, acct.Email, acct.FullName, token); err != nil {
		h.log.Error("password reset enqueue failed", zap.String("user_id", acct.ID), zap.Error(err))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": resetSentMessage})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// POST /auth/password/reset
func (h *Handler) ResetPassword(c echo.Context) error {
	req := new(ResetPasswordRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	userID, err := h.tokens.ParseReset(req.Token, func(id string) (string, error) {
		acct, err := h.store.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return acct.PasswordHash, nil
	})
	if apperr.Is(err, apperr.KindNotFound) || errors.Is(err, ErrInvalidToken) {
		return apperr.Unauthenticated("invalid or expired token")
	}
	if err != nil {
		return err
	}

	hashed, err := h.hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := h.store.SetPassword(ctx, userID, hashed); err != nil {
		return err
	}
	h.log.Info("password reset", zap.String("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}
