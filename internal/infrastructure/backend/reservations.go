package backend

import (
	"context"
	"net/http"

	"github.com/librarydesk/console/internal/core/domain"
)

const reservationsPath = "/api/reservations"

// ReservationService wraps /api/reservations.
type ReservationService struct {
	c *Client
}

func NewReservationService(c *Client) *ReservationService { return &ReservationService{c: c} }

type reservationRequest struct {
	MemberID int64 `json:"memberId"`
	BookID   int64 `json:"bookId"`
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return list[domain.Reservation](ctx, s.c, "reservations", reservationsPath, nil)
}

func (s *ReservationService) ListByMember(ctx context.Context, memberID int64) ([]domain.Reservation, error) {
	return list[domain.Reservation](ctx, s.c, "reservations", idPath(reservationsPath+"/member", memberID), nil)
}

func (s *ReservationService) Create(ctx context.Context, memberID, bookID int64) (*domain.Reservation, error) {
	return one[domain.Reservation](ctx, s.c, "reservations", http.MethodPost, reservationsPath, reservationRequest{MemberID: memberID, BookID: bookID})
}

func (s *ReservationService) Approve(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.action(ctx, id, "approve")
}

func (s *ReservationService) Notify(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.action(ctx, id, "notify")
}

func (s *ReservationService) Fulfill(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.action(ctx, id, "fulfill")
}

func (s *ReservationService) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.action(ctx, id, "cancel")
}

func (s *ReservationService) action(ctx context.Context, id int64, verb string) (*domain.Reservation, error) {
	return one[domain.Reservation](ctx, s.c, "reservations", http.MethodPost, idPath(reservationsPath, id, verb), nil)
}
