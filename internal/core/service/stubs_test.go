package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

type stubBookAPI struct {
	mu      sync.Mutex
	books   []domain.Book
	nextID  int64
	listErr error
	calls   []string
}

func (s *stubBookAPI) called(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubBookAPI) List(context.Context) ([]domain.Book, error) {
	s.called("list")
	if s.listErr != nil {
		return []domain.Book{}, s.listErr
	}
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *stubBookAPI) Get(_ context.Context, id int64) (*domain.Book, error) {
	s.called("get")
	for _, b := range s.books {
		if b.ID == id {
			clone := b
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubBookAPI) Search(_ context.Context, q string) ([]domain.Book, error) {
	s.called("search")
	return FilterBooks(s.books, BookQuery{Search: q}), nil
}

func (s *stubBookAPI) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	s.called("create")
	s.nextID++
	b.ID = s.nextID
	s.books = append(s.books, b)
	return &b, nil
}

func (s *stubBookAPI) Update(_ context.Context, id int64, b domain.Book) (*domain.Book, error) {
	s.called("update")
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i] = b
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubBookAPI) Delete(_ context.Context, id int64) error {
	s.called("delete")
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---------------------------------------------------------------------------
// Fines
// ---------------------------------------------------------------------------

type stubFineAPI struct {
	mu      sync.Mutex
	fines   []domain.Fine
	payErr  error
	listErr error
	calls   []string
}

func (s *stubFineAPI) called(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubFineAPI) List(context.Context) ([]domain.Fine, error) {
	s.called("list")
	if s.listErr != nil {
		return []domain.Fine{}, s.listErr
	}
	out := make([]domain.Fine, len(s.fines))
	copy(out, s.fines)
	return out, nil
}

func (s *stubFineAPI) ListByMember(_ context.Context, memberID int64) ([]domain.Fine, error) {
	s.called("listByMember")
	var out []domain.Fine
	for _, f := range s.fines {
		if f.MemberID == memberID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFineAPI) ListByStatus(_ context.Context, status domain.FineStatus) ([]domain.Fine, error) {
	s.called("listByStatus")
	return FilterFines(s.fines, status), nil
}

func (s *stubFineAPI) Create(_ context.Context, f domain.Fine) (*domain.Fine, error) {
	s.called("create")
	f.ID = int64(len(s.fines) + 1)
	s.fines = append(s.fines, f)
	return &f, nil
}

func (s *stubFineAPI) Pay(_ context.Context, id int64, amount float64) (*domain.Fine, error) {
	s.called("pay")
	if s.payErr != nil {
		return nil, s.payErr
	}
	for i := range s.fines {
		if s.fines[i].ID == id {
			s.fines[i].AmountPaid += amount
			if s.fines[i].AmountPaid >= s.fines[i].Amount {
				s.fines[i].Status = domain.FinePaid
			} else {
				s.fines[i].Status = domain.FinePartiallyPaid
			}
			f := s.fines[i]
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubFineAPI) Waive(_ context.Context, id int64, reason string) (*domain.Fine, error) {
	s.called("waive")
	for i := range s.fines {
		if s.fines[i].ID == id {
			s.fines[i].Status = domain.FineWaived
			f := s.fines[i]
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ---------------------------------------------------------------------------
// Reservations
// ---------------------------------------------------------------------------

type stubReservationAPI struct {
	mu           sync.Mutex
	reservations []domain.Reservation
	listErr      error
	calls        []string
}

func (s *stubReservationAPI) called(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubReservationAPI) List(context.Context) ([]domain.Reservation, error) {
	s.called("list")
	if s.listErr != nil {
		return []domain.Reservation{}, s.listErr
	}
	out := make([]domain.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out, nil
}

func (s *stubReservationAPI) ListByMember(_ context.Context, memberID int64) ([]domain.Reservation, error) {
	s.called("listByMember")
	var out []domain.Reservation
	for _, r := range s.reservations {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReservationAPI) Create(_ context.Context, memberID, bookID int64) (*domain.Reservation, error) {
	s.called("create")
	r := domain.Reservation{ID: int64(len(s.reservations) + 1), MemberID: memberID, BookID: bookID, Status: domain.ReservationPending}
	s.reservations = append(s.reservations, r)
	return &r, nil
}

func (s *stubReservationAPI) set(id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations[i].Status = status
			r := s.reservations[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubReservationAPI) Approve(_ context.Context, id int64) (*domain.Reservation, error) {
	s.called("approve")
	return s.set(id, domain.ReservationApproved)
}

func (s *stubReservationAPI) Notify(_ context.Context, id int64) (*domain.Reservation, error) {
	s.called("notify")
	return s.set(id, domain.ReservationNotified)
}

func (s *stubReservationAPI) Fulfill(_ context.Context, id int64) (*domain.Reservation, error) {
	s.called("fulfill")
	return s.set(id, domain.ReservationFulfilled)
}

func (s *stubReservationAPI) Cancel(_ context.Context, id int64) (*domain.Reservation, error) {
	s.called("cancel")
	return s.set(id, domain.ReservationCancelled)
}

// ---------------------------------------------------------------------------
// Auth + sessions
// ---------------------------------------------------------------------------

type stubAuthAPI struct {
	loginFn     func(username, password string) (*domain.User, error)
	logoutCalls int
}

func (s *stubAuthAPI) Login(_ context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(username, password)
}

func (s *stubAuthAPI) Logout(context.Context, string) error {
	s.logoutCalls++
	return nil
}

func (s *stubAuthAPI) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	return &domain.User{Username: in.Username, Role: "MEMBER"}, nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// ---------------------------------------------------------------------------
// Journal
// ---------------------------------------------------------------------------

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
}

var librarian = &domain.Session{ID: "s1", Username: "lib", Role: domain.RoleLibrarian}

// ---------------------------------------------------------------------------
// Reports, admins, members, borrowing
// ---------------------------------------------------------------------------

type stubReportAPI struct {
	summary    *domain.ReportSummary
	fines      *domain.FineSummary
	popular    []domain.PopularBook
	overdue    []domain.BorrowRecord
	summaryErr error
	overdueErr error
}

func (s *stubReportAPI) Summary(context.Context) (*domain.ReportSummary, error) {
	return s.summary, s.summaryErr
}

func (s *stubReportAPI) PopularBooks(_ context.Context, limit int) ([]domain.PopularBook, error) {
	if len(s.popular) > limit {
		return s.popular[:limit], nil
	}
	return s.popular, nil
}

func (s *stubReportAPI) Overdue(context.Context) ([]domain.BorrowRecord, error) {
	return s.overdue, s.overdueErr
}

func (s *stubReportAPI) FineSummary(context.Context) (*domain.FineSummary, error) {
	return s.fines, nil
}

type stubAdminAPI struct {
	admins  []domain.Admin
	listErr error
	calls   []string
}

func (s *stubAdminAPI) List(context.Context) ([]domain.Admin, error) {
	s.calls = append(s.calls, "list")
	if s.listErr != nil {
		return []domain.Admin{}, s.listErr
	}
	out := make([]domain.Admin, len(s.admins))
	copy(out, s.admins)
	return out, nil
}

func (s *stubAdminAPI) Get(_ context.Context, id int64) (*domain.Admin, error) {
	for _, a := range s.admins {
		if a.ID == id {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubAdminAPI) Create(_ context.Context, a domain.Admin) (*domain.Admin, error) {
	s.calls = append(s.calls, "create")
	a.ID = int64(len(s.admins) + 1)
	a.Password = ""
	s.admins = append(s.admins, a)
	return &a, nil
}

func (s *stubAdminAPI) Update(_ context.Context, id int64, a domain.Admin) (*domain.Admin, error) {
	s.calls = append(s.calls, "update")
	return &a, nil
}

func (s *stubAdminAPI) SetActive(_ context.Context, id int64, active bool) (*domain.Admin, error) {
	s.calls = append(s.calls, "setActive")
	for i := range s.admins {
		if s.admins[i].ID == id {
			s.admins[i].Active = active
			a := s.admins[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubAdminAPI) Delete(context.Context, int64) error {
	s.calls = append(s.calls, "delete")
	return nil
}

type stubMemberAPI struct {
	members []domain.Member
	getErr  error
}

func (s *stubMemberAPI) List(context.Context) ([]domain.Member, error) {
	return s.members, nil
}

func (s *stubMemberAPI) Get(_ context.Context, id int64) (*domain.Member, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, m := range s.members {
		if m.ID == id {
			clone := m
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubMemberAPI) Create(_ context.Context, m domain.Member) (*domain.Member, error) {
	m.ID = int64(len(s.members) + 1)
	s.members = append(s.members, m)
	return &m, nil
}

func (s *stubMemberAPI) Update(_ context.Context, id int64, m domain.Member) (*domain.Member, error) {
	return &m, nil
}

func (s *stubMemberAPI) Delete(context.Context, int64) error { return nil }

type stubBorrowAPI struct {
	mu         sync.Mutex
	records    []domain.BorrowRecord
	listErr    error
	returnFine float64
}

func (s *stubBorrowAPI) ListByMember(_ context.Context, memberID int64) ([]domain.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.BorrowRecord
	for _, r := range s.records {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubBorrowAPI) Overdue(context.Context) ([]domain.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.BorrowRecord
	for _, r := range s.records {
		if r.Overdue {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubBorrowAPI) Borrow(_ context.Context, memberID, bookID int64) (*domain.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := domain.BorrowRecord{ID: int64(len(s.records) + 1), MemberID: memberID, BookID: bookID, BorrowDate: "2024-01-01"}
	s.records = append(s.records, r)
	return &r, nil
}

func (s *stubBorrowAPI) Return(_ context.Context, id int64) (*domain.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].ReturnDate = "2024-02-01"
			s.records[i].FineAmount = s.returnFine
			r := s.records[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubActivityRepo struct {
	entries []domain.Activity
	err     error
}

func (s *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	s.entries = append(s.entries, *a)
	return nil
}

func (s *stubActivityRepo) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.entries) > limit {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}
