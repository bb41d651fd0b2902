package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/api/render"
	"github.com/librarydesk/console/internal/core/domain"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func postForm(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func get(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// signIn mimics what the session gate stores on the context.
func signIn(c echo.Context, sess *domain.Session) {
	c.Set("session", sess)
	c.Set("role", sess.Role)
}

var (
	librarian = &domain.Session{ID: "s-lib", Username: "lib", Role: domain.RoleLibrarian}
	member    = &domain.Session{ID: "s-mem", Username: "mia", Role: domain.RoleMember, MemberID: 7}
	// unlinked is a member session that carries no member id.
	unlinked  = &domain.Session{ID: "s-unl", Username: "alice", Role: domain.RoleMember}
)

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (s *stubRecorder) Record(a domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, a)
}

type stubFineAPI struct {
	fines     []domain.Fine
	payCalls  int
	listCalls int
	byMember  []int64
}

func (s *stubFineAPI) List(context.Context) ([]domain.Fine, error) {
	s.listCalls++
	return s.fines, nil
}

func (s *stubFineAPI) ListByMember(_ context.Context, memberID int64) ([]domain.Fine, error) {
	s.byMember = append(s.byMember, memberID)
	var out []domain.Fine
	for _, f := range s.fines {
		if f.MemberID == memberID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFineAPI) ListByStatus(_ context.Context, status domain.FineStatus) ([]domain.Fine, error) {
	var out []domain.Fine
	for _, f := range s.fines {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFineAPI) Create(_ context.Context, f domain.Fine) (*domain.Fine, error) {
	f.ID = int64(len(s.fines) + 1)
	s.fines = append(s.fines, f)
	return &f, nil
}

func (s *stubFineAPI) Pay(_ context.Context, id int64, amount float64) (*domain.Fine, error) {
	s.payCalls++
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

func (s *stubFineAPI) Waive(_ context.Context, id int64, _ string) (*domain.Fine, error) {
	for i := range s.fines {
		if s.fines[i].ID == id {
			s.fines[i].Status = domain.FineWaived
			f := s.fines[i]
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubBookAPI struct {
	books []domain.Book
}

func (s *stubBookAPI) List(context.Context) ([]domain.Book, error) { return s.books, nil }

func (s *stubBookAPI) Get(_ context.Context, id int64) (*domain.Book, error) {
	for _, b := range s.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubBookAPI) Search(context.Context, string) ([]domain.Book, error) { return s.books, nil }

func (s *stubBookAPI) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	b.ID = int64(len(s.books) + 1)
	s.books = append(s.books, b)
	return &b, nil
}

func (s *stubBookAPI) Update(_ context.Context, id int64, b domain.Book) (*domain.Book, error) {
	b.ID = id
	return &b, nil
}

func (s *stubBookAPI) Delete(context.Context, int64) error { return nil }
