package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/service"
)

// DashboardHandler renders the three role landing pages. Each section of a
// dashboard loads on its own, so one failing backend call only blanks that
// section.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	d := h.dashboards.Admin(c.Request().Context())
	return renderPage(c, http.StatusOK, "admin_dashboard", "Administration", d, nil)
}

func (h *DashboardHandler) Librarian(c echo.Context) error {
	d := h.dashboards.Librarian(c.Request().Context())
	return renderPage(c, http.StatusOK, "librarian_dashboard", "Circulation overview", d, nil)
}

func (h *DashboardHandler) Member(c echo.Context) error {
	sess, err := memberSession(c)
	if err != nil {
		return err
	}
	d := h.dashboards.Member(c.Request().Context(), sess.MemberID)
	return renderPage(c, http.StatusOK, "member_dashboard", "Welcome, "+sess.DisplayName(), d, nil)
}
