package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/librarydesk/console/internal/core/domain"
)

const reportsPath = "/api/reports"

// ReportService wraps /api/reports.
type ReportService struct {
	c *Client
}

func NewReportService(c *Client) *ReportService { return &ReportService{c: c} }

func (s *ReportService) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	return one[domain.ReportSummary](ctx, s.c, "reports", http.MethodGet, reportsPath+"/summary", nil)
}

func (s *ReportService) PopularBooks(ctx context.Context, limit int) ([]domain.PopularBook, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	return list[domain.PopularBook](ctx, s.c, "reports", reportsPath+"/popular-books", q)
}

func (s *ReportService) Overdue(ctx context.Context) ([]domain.BorrowRecord, error) {
	return list[domain.BorrowRecord](ctx, s.c, "reports", reportsPath+"/overdue", nil)
}

func (s *ReportService) FineSummary(ctx context.Context) (*domain.FineSummary, error) {
	return one[domain.FineSummary](ctx, s.c, "reports", http.MethodGet, reportsPath+"/fines", nil)
}
