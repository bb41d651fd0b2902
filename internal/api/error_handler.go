package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/api/middleware"
	"github.com/librarydesk/console/internal/api/render"
	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
	"github.com/librarydesk/console/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all JSON errors.
type errorResponse struct {
	Error string `json:"error"`
}

type errorView struct {
	Status  int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and backend errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"error": "<message>"} on JSON routes and the error page elsewhere.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		v := render.View{Title: http.StatusText(code), Data: errorView{Status: code, Message: msg}}
		if sess := middleware.CurrentSession(c); sess != nil {
			v.Session = sess
			v.Nav = render.Navigation(sess.Role)
		}
		if rerr := c.Render(code, "error", v); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	p := c.Request().URL.Path
	if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, service.ErrorMessage(err)
	case errors.Is(err, domain.ErrAccessDenied), errors.Is(err, domain.ErrUnknownRole),
		errors.Is(err, domain.ErrNoMemberAccount):
		return http.StatusForbidden, service.ErrorMessage(err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, service.ErrorMessage(err)
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "not signed in"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, service.ErrorMessage(err)
	}

	// The library backend answered with an error of its own.
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusNotFound {
			return http.StatusNotFound, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
