package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

const recentActivityLimit = 15

// Section is one independently loaded part of a dashboard. Err is the
// display message when that part failed; other sections still render.
type Section[T any] struct {
	Data T
	Err  string
}

func (s Section[T]) Failed() bool { return s.Err != "" }

func section[T any](data T, err error) Section[T] {
	if err != nil {
		return Section[T]{Err: ErrorMessage(err)}
	}
	return Section[T]{Data: data}
}

// AdminDashboard is the admin landing page.
type AdminDashboard struct {
	Summary      Section[*domain.ReportSummary]
	Admins       Section[[]domain.Admin]
	Activity     Section[[]domain.Activity]
	Availability int
}

// LibrarianDashboard is the librarian landing page.
type LibrarianDashboard struct {
	Summary      Section[*domain.ReportSummary]
	Overdue      Section[[]domain.BorrowRecord]
	Pending      Section[[]domain.Reservation]
	UnpaidFines  Section[[]domain.Fine]
	Availability int
}

// MemberDashboard is the member landing page.
type MemberDashboard struct {
	Loans        Section[[]domain.BorrowRecord]
	Reservations Section[[]domain.Reservation]
	Fines        Section[[]domain.Fine]
	Outstanding  float64
}

// DashboardService loads every dashboard section concurrently.
type DashboardService struct {
	backend  ports.Backend
	activity ports.ActivityRepository
	log      zerolog.Logger
}

func NewDashboardService(backend ports.Backend, activity ports.ActivityRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{backend: backend, activity: activity, log: log}
}

// parallel runs fns concurrently and waits for all of them.
func parallel(fns ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		fn := fn
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()
}

func (s *DashboardService) Admin(ctx context.Context) *AdminDashboard {
	d := &AdminDashboard{}
	parallel(
		func() {
			sum, err := s.backend.Reports.Summary(ctx)
			d.Summary = section(sum, err)
		},
		func() {
			admins, err := s.backend.Admins.List(ctx)
			d.Admins = section(admins, err)
		},
		func() {
			if s.activity == nil {
				d.Activity = Section[[]domain.Activity]{Data: []domain.Activity{}}
				return
			}
			recent, err := s.activity.Recent(ctx, recentActivityLimit)
			d.Activity = section(recent, err)
		},
	)
	if sum := d.Summary.Data; sum != nil {
		d.Availability = Percent(float64(sum.AvailableCopies), float64(sum.TotalCopies))
	}
	s.logFailures("admin", d.Summary.Err, d.Admins.Err, d.Activity.Err)
	return d
}

func (s *DashboardService) Librarian(ctx context.Context) *LibrarianDashboard {
	d := &LibrarianDashboard{}
	parallel(
		func() {
			sum, err := s.backend.Reports.Summary(ctx)
			d.Summary = section(sum, err)
		},
		func() {
			overdue, err := s.backend.Borrow.Overdue(ctx)
			d.Overdue = section(overdue, err)
		},
		func() {
			all, err := s.backend.Reservations.List(ctx)
			d.Pending = section(FilterReservations(all, domain.ReservationPending), err)
		},
		func() {
			unpaid, err := s.backend.Fines.ListByStatus(ctx, domain.FineUnpaid)
			d.UnpaidFines = section(unpaid, err)
		},
	)
	if sum := d.Summary.Data; sum != nil {
		d.Availability = Percent(float64(sum.AvailableCopies), float64(sum.TotalCopies))
	}
	s.logFailures("librarian", d.Summary.Err, d.Overdue.Err, d.Pending.Err, d.UnpaidFines.Err)
	return d
}

func (s *DashboardService) Member(ctx context.Context, memberID int64) *MemberDashboard {
	d := &MemberDashboard{}
	parallel(
		func() {
			loans, err := s.backend.Borrow.ListByMember(ctx, memberID)
			d.Loans = section(loans, err)
		},
		func() {
			rs, err := s.backend.Reservations.ListByMember(ctx, memberID)
			d.Reservations = section(rs, err)
		},
		func() {
			fines, err := s.backend.Fines.ListByMember(ctx, memberID)
			d.Fines = section(fines, err)
		},
	)
	d.Outstanding = OutstandingTotal(d.Fines.Data)
	s.logFailures("member", d.Loans.Err, d.Reservations.Err, d.Fines.Err)
	return d
}

func (s *DashboardService) logFailures(board string, errs ...string) {
	for _, e := range errs {
		if e != "" {
			s.log.Warn().Str("dashboard", board).Str("error", e).Msg("dashboard section failed")
		}
	}
}
