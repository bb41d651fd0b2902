package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Show loads every report together; if any one fails the page shows a
// single error banner and no partial data.
func (h *ReportHandler) Show(c echo.Context) error {
	page, err := h.reports.Reports(c.Request().Context())
	return renderPage(c, http.StatusOK, "reports", "Reports", page, failed(err))
}
