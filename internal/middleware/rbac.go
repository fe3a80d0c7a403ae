package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// RequireRoles ensures the requester's role is one of the allowed roles.
// Usage: route(..., RequireRoles("stringer"))
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			if role == "" {
				return apperr.Forbidden("role missing")
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return apperr.Forbidden("only %s accounts can do this", strings.Join(roles, " or "))
		}
	}
}
