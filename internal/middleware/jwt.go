package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// Identity is what a verified access token asserts about its bearer.
type Identity struct {
	UserID  string
	Role    string
	IsAdmin bool
}

type TokenParser interface {
	ParseAccess(token string) (Identity, error)
}

// JWT verifies the bearer token and stores the caller identity on the
// context. Browsers cannot set headers on websocket upgrades, so a token
// query parameter is accepted on GET requests as well.
func JWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearer(c)
			if err != nil {
				return err
			}
			id, err := parser.ParseAccess(raw)
			if err != nil {
				return apperr.Unauthenticated("invalid or expired token")
			}
			c.Set(KeyUserID, id.UserID)
			c.Set(KeyRole, id.Role)
			c.Set(KeyIsAdmin, id.IsAdmin)
			return next(c)
		}
	}
}

func bearer(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		if tok := c.QueryParam("token"); tok != "" && c.Request().Method == "GET" {
			return tok, nil
		}
		return "", apperr.Unauthenticated("missing Authorization header")
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", apperr.Unauthenticated("invalid Authorization format")
	}
	return strings.TrimSpace(header[len(prefix):]), nil
}
