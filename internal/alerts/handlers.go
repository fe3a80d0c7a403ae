package alerts

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// ListNotifications returns current user's notifications, newest first
func (h *Handler) ListNotifications(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	page := utils.PageParams(c, 20, 100)

	items, err := h.store.List(c.Request().Context(), userID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": items, "page": page.Page, "limit": page.Limit})
}

// MarkNotificationRead marks specific notification as read
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.MarkRead(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
