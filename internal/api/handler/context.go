package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/api/middleware"
	"github.com/librarydesk/console/internal/api/render"
	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

// ctxSession returns the session placed on the context by the auth gate.
// A missing session means the route was wired without the gate.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// memberSession is ctxSession for member-scoped screens. A session without a
// member id is refused rather than falling back to the unscoped staff lists.
func memberSession(c echo.Context) (*domain.Session, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	if sess.MemberID <= 0 {
		return nil, domain.ErrNoMemberAccount
	}
	return sess, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

func queryInt(c echo.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.QueryParam(name), 10, 64)
	return v
}

// bindForm binds and validates a submitted form.
func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.Invalid("the form could not be read")
	}
	return c.Validate(dst)
}

// renderPage wraps data in the layout with the signed-in user's navigation.
func renderPage(c echo.Context, code int, name, title string, data any, flash *service.Flash) error {
	v := render.View{Title: title, Flash: flash, Data: data}
	if sess := middleware.CurrentSession(c); sess != nil {
		v.Session = sess
		v.Nav = render.Navigation(sess.Role)
	}
	return c.Render(code, name, v)
}

// flashStatus is the status code of a page re-rendered with an error banner.
func flashStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAccessDenied), errors.Is(err, domain.ErrNoMemberAccount):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

// failed renders a page after a failed load or mutation.
func failed(err error) *service.Flash {
	if err == nil {
		return nil
	}
	return service.Failure(err)
}
