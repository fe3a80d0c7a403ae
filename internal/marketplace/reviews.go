package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

// CreateReview allows a player to rate and review a completed request
func (h *Handler) CreateReview(c echo.Context) error {
	playerID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}

	var in CreateReviewInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	review, err := h.svc.CreateReview(c.Request().Context(), playerID, requestID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"review":  review,
		"message": "Review created successfully",
	})
}

// GetRequestReview returns the review for a specific request (if it exists)
func (h *Handler) GetRequestReview(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}

	review, err := h.svc.RequestReview(c.Request().Context(), userID, requestID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"review": review})
}

// GetStringerReviews returns a stringer's reviews with a rating summary
func (h *Handler) GetStringerReviews(c echo.Context) error {
	stringerID, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}
	page := utils.PageParams(c, 10, 50)

	summary, reviews, err := h.svc.StringerReviews(c.Request().Context(), stringerID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stringer_summary": summary,
		"reviews":          reviews,
		"pagination": echo.Map{
			"page":  page.Page,
			"limit": page.Limit,
			"total": summary.TotalReviews,
		},
	})
}
