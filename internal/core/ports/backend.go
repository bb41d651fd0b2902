package ports

import (
	"context"

	"github.com/librarydesk/console/internal/core/domain"
)

// The interfaces below describe the external library REST backend. Every
// method is a single round trip and returns the decoded body.

type BookAPI interface {
	List(ctx context.Context) ([]domain.Book, error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	Search(ctx context.Context, query string) ([]domain.Book, error)
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	Update(ctx context.Context, id int64, b domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

type FineAPI interface {
	List(ctx context.Context) ([]domain.Fine, error)
	ListByMember(ctx context.Context, memberID int64) ([]domain.Fine, error)
	ListByStatus(ctx context.Context, status domain.FineStatus) ([]domain.Fine, error)
	Create(ctx context.Context, f domain.Fine) (*domain.Fine, error)
	Pay(ctx context.Context, id int64, amount float64) (*domain.Fine, error)
	Waive(ctx context.Context, id int64, reason string) (*domain.Fine, error)
}

type AdminAPI interface {
	List(ctx context.Context) ([]domain.Admin, error)
	Get(ctx context.Context, id int64) (*domain.Admin, error)
	Create(ctx context.Context, a domain.Admin) (*domain.Admin, error)
	Update(ctx context.Context, id int64, a domain.Admin) (*domain.Admin, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.Admin, error)
	Delete(ctx context.Context, id int64) error
}

type ReportAPI interface {
	Summary(ctx context.Context) (*domain.ReportSummary, error)
	PopularBooks(ctx context.Context, limit int) ([]domain.PopularBook, error)
	Overdue(ctx context.Context) ([]domain.BorrowRecord, error)
	FineSummary(ctx context.Context) (*domain.FineSummary, error)
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
}

type MemberAPI interface {
	List(ctx context.Context) ([]domain.Member, error)
	Get(ctx context.Context, id int64) (*domain.Member, error)
	Create(ctx context.Context, m domain.Member) (*domain.Member, error)
	Update(ctx context.Context, id int64, m domain.Member) (*domain.Member, error)
	Delete(ctx context.Context, id int64) error
}

type BorrowAPI interface {
	ListByMember(ctx context.Context, memberID int64) ([]domain.BorrowRecord, error)
	Overdue(ctx context.Context) ([]domain.BorrowRecord, error)
	Borrow(ctx context.Context, memberID, bookID int64) (*domain.BorrowRecord, error)
	Return(ctx context.Context, recordID int64) (*domain.BorrowRecord, error)
}

type ReservationAPI interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByMember(ctx context.Context, memberID int64) ([]domain.Reservation, error)
	Create(ctx context.Context, memberID, bookID int64) (*domain.Reservation, error)
	Approve(ctx context.Context, id int64) (*domain.Reservation, error)
	Notify(ctx context.Context, id int64) (*domain.Reservation, error)
	Fulfill(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
}

// Backend bundles every resource API.
type Backend struct {
	Books        BookAPI
	Fines        FineAPI
	Admins       AdminAPI
	Reports      ReportAPI
	Auth         AuthAPI
	Members      MemberAPI
	Borrow       BorrowAPI
	Reservations ReservationAPI
}

// RegisterInput is the member self-registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

type backendTokenKey struct{}

// WithBackendToken attaches the session's backend bearer token to ctx.
func WithBackendToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, backendTokenKey{}, token)
}

// BackendToken returns the token set by WithBackendToken, if any.
func BackendToken(ctx context.Context) string {
	t, _ := ctx.Value(backendTokenKey{}).(string)
	return t
}
