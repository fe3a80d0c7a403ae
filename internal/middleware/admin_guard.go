package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// AdminGuard ensures only admin users can access admin routes
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return apperr.Forbidden("admin access only")
		}
		return next(c)
	}
}
