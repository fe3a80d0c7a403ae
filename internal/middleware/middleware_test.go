package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

type stubParser map[string]Identity

func (s stubParser) ParseAccess(token string) (Identity, error) {
	id, ok := s[token]
	if !ok {
		return Identity{}, errors.New("bad token")
	}
	return id, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(zap.NewNop())
	return e
}

func whoami(c echo.Context) error {
	uid, err := UserID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": uid, "role": Role(c), "admin": IsAdmin(c)})
}

func TestJWT(t *testing.T) {
	parser := stubParser{
		"player-token": {UserID: "u1", Role: "player"},
		"admin-token":  {UserID: "u2", Role: "stringer", IsAdmin: true},
	}
	e := newEcho()
	g := e.Group("", JWT(parser))
	g.GET("/me", whoami)
	g.GET("/admin", whoami, AdminGuard)
	g.POST("/stringer-only", whoami, RequireRoles("stringer"))

	tests := []struct {
		name   string
		method string
		target string
		header string
		status int
	}{
		{"no header", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "/me", "Basic abc", http.StatusUnauthorized},
		{"unknown token", http.MethodGet, "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid token", http.MethodGet, "/me", "Bearer player-token", http.StatusOK},
		{"lowercase scheme", http.MethodGet, "/me", "bearer player-token", http.StatusOK},
		{"query token on GET", http.MethodGet, "/me?token=player-token", "", http.StatusOK},
		{"query token on POST", http.MethodPost, "/stringer-only?token=admin-token", "", http.StatusUnauthorized},
		{"admin guard rejects player", http.MethodGet, "/admin", "Bearer player-token", http.StatusForbidden},
		{"admin guard admits admin", http.MethodGet, "/admin", "Bearer admin-token", http.StatusOK},
		{"role guard rejects player", http.MethodPost, "/stringer-only", "Bearer player-token", http.StatusForbidden},
		{"role guard admits stringer", http.MethodPost, "/stringer-only", "Bearer admin-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestUnauthenticatedBodyKind(t *testing.T) {
	e := newEcho()
	e.GET("/me", whoami, JWT(stubParser{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing Authorization header","kind":"unauthenticated"}`, rec.Body.String())
}
