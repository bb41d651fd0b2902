package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

const popularBooksLimit = 10

// ReportsPage is the view model of the reports screen.
type ReportsPage struct {
	Summary      domain.ReportSummary
	Fines        domain.FineSummary
	Popular      []domain.PopularBook
	Overdue      []domain.BorrowRecord
	Availability int // percent of copies on the shelf
	Collection   int // percent of issued fines collected
}

// ReportService backs the reports screen.
type ReportService struct {
	reports ports.ReportAPI
	log     zerolog.Logger
}

func NewReportService(reports ports.ReportAPI, log zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, log: log}
}

// Reports fires the four report reads in parallel; any failure fails the page.
func (s *ReportService) Reports(ctx context.Context) (*ReportsPage, error) {
	var (
		summary *domain.ReportSummary
		fines   *domain.FineSummary
		popular []domain.PopularBook
		overdue []domain.BorrowRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { summary, err = s.reports.Summary(gctx); return })
	g.Go(func() (err error) { fines, err = s.reports.FineSummary(gctx); return })
	g.Go(func() (err error) { popular, err = s.reports.PopularBooks(gctx, popularBooksLimit); return })
	g.Go(func() (err error) { overdue, err = s.reports.Overdue(gctx); return })

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("load reports")
		return &ReportsPage{Popular: []domain.PopularBook{}, Overdue: []domain.BorrowRecord{}}, fmt.Errorf("load reports: %w", err)
	}

	return &ReportsPage{
		Summary:      *summary,
		Fines:        *fines,
		Popular:      popular,
		Overdue:      overdue,
		Availability: Percent(float64(summary.AvailableCopies), float64(summary.TotalCopies)),
		Collection:   Percent(fines.TotalCollected, fines.TotalIssued),
	}, nil
}
