package main

import (
	"context"
	"net/http"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sudo-init-do/stringr/internal/apperr"
	"github.com/sudo-init-do/stringr/internal/auth"
	"github.com/sudo-init-do/stringr/internal/logging"
	mware "github.com/sudo-init-do/stringr/internal/middleware"
	"github.com/sudo-init-do/stringr/internal/validate"
)

func (a *app) router(pool *pgxpool.Pool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(a.log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(sentryecho.New(sentryecho.Options{
		Repanic: true,
		Timeout: 10 * time.Second,
	}))
	e.Use(logging.RequestLogger(a.log))
	e.Use(middleware.CORS())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "stringr"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	jwt := mware.JWT(a.tokens)

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", a.auth.Signup)
	authGroup.POST("/login", a.auth.Login)
	authGroup.POST("/password/request", a.auth.RequestPasswordReset)
	authGroup.POST("/password/reset", a.auth.ResetPassword)
	authGroup.GET("/me", a.auth.Me, jwt)

	// Public routes
	e.GET("/profiles/:id", a.profiles.GetPublicProfile)
	e.GET("/stringers/search", a.stringers.Search)
	e.GET("/stringers/:id", a.stringers.GetPublic)
	e.GET("/stringers/:id/reviews", a.requests.GetStringerReviews)

	// Protected routes
	api := e.Group("")
	api.Use(jwt)

	api.GET("/profile", a.profiles.GetMyProfile)
	api.PATCH("/profile", a.profiles.UpdateProfile)
	api.POST("/profile/become-stringer", a.stringers.BecomeStringer)

	api.GET("/stringer/settings", a.stringers.GetMine, mware.RequireRoles(auth.RoleStringer))
	api.PUT("/stringer/settings", a.stringers.PutMine, mware.RequireRoles(auth.RoleStringer))
	api.DELETE("/stringer/settings", a.stringers.DeleteMine, mware.RequireRoles(auth.RoleStringer))

	api.POST("/requests", a.requests.CreateRequest)
	api.GET("/requests", a.requests.ListMine)
	api.GET("/requests/:id", a.requests.GetRequest)
	api.PATCH("/requests/:id/status", a.requests.UpdateStatus)
	api.POST("/requests/:id/review", a.requests.CreateReview)
	api.GET("/requests/:id/review", a.requests.GetRequestReview)

	api.POST("/requests/:id/messages", a.messages.SendMessage)
	api.GET("/requests/:id/messages", a.messages.ListMessages)
	api.GET("/requests/:id/ws", a.messages.RequestWS)

	api.GET("/notifications", a.alerts.ListNotifications)
	api.POST("/notifications/:id/read", a.alerts.MarkNotificationRead)

	// Admin routes
	admin := e.Group("/admin")
	admin.Use(jwt)
	admin.Use(mware.AdminGuard)

	admin.GET("/stats", a.admin.Stats)
	admin.GET("/users", a.admin.ListUsers)
	admin.GET("/requests", a.admin.ListRequests)
	admin.GET("/stringers", a.admin.ListStringers)
	admin.POST("/stringers/:id/suspend", a.admin.SuspendStringer)
	admin.POST("/stringers/:id/unsuspend", a.admin.UnsuspendStringer)

	return e
}
