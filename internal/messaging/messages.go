package messaging

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

type Handler struct {
	svc *Service
	hub *Hub
	log *zap.Logger
}

func NewHandler(svc *Service, hub *Hub, log *zap.Logger) *Handler {
	return &Handler{svc: svc, hub: hub, log: log}
}

// =========================
// SendMessage - player or stringer posts to a request thread
// =========================
func (h *Handler) SendMessage(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}

	var in SendInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	m, err := h.svc.Send(c.Request().Context(), userID, requestID, in.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// =========================
// ListMessages - the thread of a request, oldest first
// =========================
func (h *Handler) ListMessages(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}

	var since *time.Time
	if v := c.QueryParam("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return apperr.Validation("invalid since timestamp, use RFC3339")
		}
		since = &t
	}

	msgs, err := h.svc.List(c.Request().Context(), userID, requestID, since)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
