package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/marketplace"
	"github.com/sudo-init-do/stringr/internal/utils"
)

// GET /admin/requests?status=
func (h *Handler) ListRequests(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !marketplace.Status(status).Valid() {
		return apperr.Validation("invalid status filter")
	}
	page := utils.PageParams(c, 50, 200)

	requests, err := h.store.ListRequests(c.Request().Context(), status, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests, "page": page.Page, "limit": page.Limit})
}
