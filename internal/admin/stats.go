package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	store     Store
	suspender Suspender
	log       *zap.Logger
}

func NewHandler(store Store, suspender Suspender, log *zap.Logger) *Handler {
	return &Handler{store: store, suspender: suspender, log: log}
}

type Stats struct {
	Users              int            `json:"users"`
	Stringers          int            `json:"stringers"`
	SuspendedStringers int            `json:"suspended_stringers"`
	Requests           map[string]int `json:"requests"`
	Reviews            int            `json:"reviews"`
	Messages           int            `json:"messages"`
}

// CollectStats runs the count queries concurrently and fails if any fails.
func CollectStats(ctx context.Context, store Store) (*Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		st.Users, err = store.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Stringers, st.SuspendedStringers, err = store.CountStringers(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Requests, err = store.CountRequestsByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Reviews, err = store.CountReviews(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Messages, err = store.CountMessages(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}

// GET /admin/stats
func (h *Handler) Stats(c echo.Context) error {
	st, err := CollectStats(c.Request().Context(), h.store)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
