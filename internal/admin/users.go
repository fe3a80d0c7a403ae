package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

// GET /admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	page := utils.PageParams(c, 50, 200)
	users, err := h.store.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "page": page.Page, "limit": page.Limit})
}

// GET /admin/stringers
func (h *Handler) ListStringers(c echo.Context) error {
	page := utils.PageParams(c, 50, 200)
	stringers, err := h.store.ListStringers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"stringers": stringers, "page": page.Page, "limit": page.Limit})
}

// POST /admin/stringers/:id/suspend
func (h *Handler) SuspendStringer(c echo.Context) error {
	return h.setSuspended(c, true)
}

// POST /admin/stringers/:id/unsuspend
func (h *Handler) UnsuspendStringer(c echo.Context) error {
	return h.setSuspended(c, false)
}

func (h *Handler) setSuspended(c echo.Context, suspended bool) error {
	id, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.suspender.SetSuspended(c.Request().Context(), id, suspended); err != nil {
		return err
	}

	adminID, _ := middleware.UserID(c)
	h.log.Info("stringer suspension changed",
		zap.String("stringer_id", id),
		zap.Bool("suspended", suspended),
		zap.String("admin_id", adminID),
	)

	msg := "stringer unsuspended"
	if suspended {
		msg = "stringer suspended"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "stringer_id": id, "suspended": suspended})
}
