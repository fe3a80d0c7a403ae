package stringer

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/geo"
	"github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/utils"
)

// TokenIssuer signs access tokens. Becoming a stringer changes the role a
// token carries, so the caller gets a fresh one.
type TokenIssuer interface {
	Issue(userID, role string, admin bool) (string, error)
}

type Handler struct {
	store    Store
	searcher *Searcher
	tokens   TokenIssuer
	log      *zap.Logger
}

func NewHandler(store Store, searcher *Searcher, tokens TokenIssuer, log *zap.Logger) *Handler {
	return &Handler{store: store, searcher: searcher, tokens: tokens, log: log}
}

// Search handles GET /stringers/search
func (h *Handler) Search(c echo.Context) error {
	lat, err := utils.QueryFloat(c, "lat")
	if err != nil {
		return err
	}
	lng, err := utils.QueryFloat(c, "lng")
	if err != nil {
		return err
	}
	if lat == nil || lng == nil {
		return apperr.Validation("lat and lng are required")
	}

	p := SearchParams{Origin: geo.Point{Lat: *lat, Lng: *lng}, RadiusKm: DefaultRadiusKm}
	radius, err := utils.QueryFloat(c, "radius_km")
	if err != nil {
		return err
	}
	if radius != nil {
		p.RadiusKm = *radius
	}
	if p.MinRating, err = utils.QueryFloat(c, "min_rating"); err != nil {
		return err
	}
	if v := c.QueryParam("max_price_cents"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperr.Validation("max_price_cents must be an integer")
		}
		p.MaxPriceCents = &n
	}
	if v := c.QueryParam("accepts_rush"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperr.Validation("accepts_rush must be true or false")
		}
		p.RequireRush = b
	}
	if err := p.Validate(); err != nil {
		return err
	}

	results, err := h.searcher.Search(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stringers": results,
		"count":     len(results),
		"radius_km": p.RadiusKm,
	})
}

// GetPublic handles GET /stringers/:id
func (h *Handler) GetPublic(c echo.Context) error {
	id, err := utils.PathUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.store.GetPublic(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// GetMine handles GET /stringer/settings
func (h *Handler) GetMine(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	s, err := h.store.GetSettings(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// PutMine handles PUT /stringer/settings, a full replace.
func (h *Handler) PutMine(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var in SettingsInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	s, err := h.store.UpsertSettings(c.Request().Context(), in.Settings(uid))
	if err != nil {
		return err
	}
	h.log.Info("stringer settings saved", zap.String("stringer_id", uid))
	return c.JSON(http.StatusOK, s)
}

// DeleteMine handles DELETE /stringer/settings. The stringer stops appearing
// in search at once.
func (h *Handler) DeleteMine(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteSettings(c.Request().Context(), uid); err != nil {
		return err
	}
	h.log.Info("stringer settings deleted", zap.String("stringer_id", uid))
	return c.NoContent(http.StatusNoContent)
}

// BecomeStringer handles POST /profile/become-stringer
func (h *Handler) BecomeStringer(c echo.Context) error {
	uid, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	s, err := h.store.BecomeStringer(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	token, err := h.tokens.Issue(uid, "stringer", middleware.IsAdmin(c))
	if err != nil {
		return apperr.Internal("token generation failed", err)
	}
	h.log.Info("player became stringer", zap.String("user_id", uid))
	return c.JSON(http.StatusOK, echo.Map{"token": token, "settings": s})
}
