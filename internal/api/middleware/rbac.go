package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
)

// RoleOf returns the role the gate stored on c, or "" on public routes.
func RoleOf(c echo.Context) domain.Role {
	role, _ := c.Get(roleKey).(domain.Role)
	return role
}

// RBAC admits only the listed roles. It runs after the session gate; a request
// that reaches it without a role was routed around the gate and is sent to the
// login screen.
func RBAC(log zerolog.Logger, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]bool, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleOf(c)
			switch {
			case role == "":
				return c.Redirect(http.StatusSeeOther, LoginPath)
			case !allowed[role]:
				log.Warn().
					Str("role", string(role)).
					Str("path", c.Request().URL.Path).
					Msg("role denied")
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrAccessDenied.Error())
			}
			return next(c)
		}
	}
}
