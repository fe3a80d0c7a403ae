package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// =========================
// CreateRequest - player places a restring request
// =========================
func (h *Handler) CreateRequest(c echo.Context) error {
	playerID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var in CreateRequestInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	r, err := h.svc.Create(c.Request().Context(), playerID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// =========================
// UpdateStatus - either party moves the request through its lifecycle
// =========================
func (h *Handler) UpdateStatus(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}

	var in UpdateStatusInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	r, err := h.svc.ApplyTransition(c.Request().Context(), userID, requestID, in.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// =========================
// GetRequest - a single request, participants only
// =========================
func (h *Handler) GetRequest(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}

	r, err := h.svc.Get(c.Request().Context(), userID, requestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"request":           r,
		"valid_transitions": AllowedTransitions(r, userID),
	})
}

// =========================
// ListMine - requests the caller placed or was assigned
// =========================
func (h *Handler) ListMine(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.ListMine(c.Request().Context(), userID, Status(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": requests})
}
