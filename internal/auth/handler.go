package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// ResetNotifier delivers password reset links.
type ResetNotifier interface {
	PasswordReset(ctx context.Context, userID, email, name, token string) error
}

type Handler struct {
	store    Store
	tokens   *Tokens
	resets   ResetNotifier
	log      *zap.Logger
	hashCost int
}

type Option func(*Handler)

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(h *Handler) { h.hashCost = cost }
}

func NewHandler(store Store, tokens *Tokens, resets ResetNotifier, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{store: store, tokens: tokens, resets: resets, log: log, hashCost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(h)
	}
	return h
}

type SignupRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=player stringer"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  *Account `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.hashCost)
	if err != nil {
		return "", apperr.Internal("hash password", err)
	}
	return string(hashed), nil
}

// ===== Signup =====
func (h *Handler) Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = RolePlayer
	}

	hashed, err := h.hash(req.Password)
	if err != nil {
		return err
	}
	acct := &Account{Email: req.Email, PasswordHash: hashed, Role: req.Role, FullName: strings.TrimSpace(req.FullName)}
	if err := h.store.CreateAccount(c.Request().Context(), acct); err != nil {
		return err
	}

	token, err := h.tokens.Issue(acct.ID, acct.Role, acct.IsAdmin)
	if err != nil {
		return apperr.Internal("token generation failed", err)
	}
	h.log.Info("account created", zap.String("user_id", acct.ID), zap.String("role", acct.Role))
	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: acct})
}
