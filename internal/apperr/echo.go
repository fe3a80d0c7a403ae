package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalMessage = "internal server error"

// Body renders err as the JSON error payload and returns it with its status.
func Body(err error) (int, echo.Map) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		kind := kindForStatus(he.Code)
		if kind == KindInternal {
			msg = internalMessage
		}
		return he.Code, echo.Map{"error": msg, "kind": kind}
	}

	var e *Error
	if !errors.As(err, &e) {
		e = Internal("unhandled", err)
	}

	body := echo.Map{"kind": e.Kind}
	for k, v := range e.Details {
		body[k] = v
	}
	if e.Kind == KindInternal {
		body["error"] = internalMessage
	} else {
		body["error"] = e.Message
	}
	return Status(e.Kind), body
}

// HTTPErrorHandler replaces echo's default handler so every handler can just
// return an error.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Body(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			report(c, err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

func report(c echo.Context, err error) {
	hub := sentryecho.GetHubFromContext(c)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if uid, ok := c.Get("user_id").(string); ok && uid != "" {
			scope.SetUser(sentry.User{ID: uid})
		}
		scope.SetTag("route", fmt.Sprintf("%s %s", c.Request().Method, c.Path()))
		hub.CaptureException(err)
	})
}
