package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

// Context keys set by JWT.
const (
	KeyUserID  = "user_id"
	KeyRole    = "role"
	KeyIsAdmin = "is_admin"
)

// UserID returns the authenticated caller, or an unauthenticated error when
// the route was reached without a verified token.
func UserID(c echo.Context) (string, error) {
	uid, ok := c.Get(KeyUserID).(string)
	if !ok || uid == "" {
		return "", apperr.Unauthenticated("")
	}
	return uid, nil
}

func Role(c echo.Context) string {
	role, _ := c.Get(KeyRole).(string)
	return role
}

func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(KeyIsAdmin).(bool)
	return admin
}
