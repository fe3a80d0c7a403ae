package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ===== Login =====
func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if err := c.Validate(req); err != nil {
		return err
	}

	acct, err := h.store.FindByEmail(c.Request().Context(), req.Email)
	if apperr.Is(err, apperr.KindNotFound) {
		return apperr.Unauthenticated("invalid credentials")
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return apperr.Unauthenticated("invalid credentials")
	}

	token, err := h.tokens.Issue(acct.ID, acct.Role, acct.IsAdmin)
	if err != nil {
		return apperr.Internal("token generation failed", err)
	}
	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: acct})
}
