package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/librarydesk/console/internal/core/domain"
)

const finesPath = "/api/fines"

// FineService wraps /api/fines.
type FineService struct {
	c *Client
}

func NewFineService(c *Client) *FineService { return &FineService{c: c} }

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

type waiveRequest struct {
	Reason string `json:"reason"`
}

func (s *FineService) List(ctx context.Context) ([]domain.Fine, error) {
	return list[domain.Fine](ctx, s.c, "fines", finesPath, nil)
}

func (s *FineService) ListByMember(ctx context.Context, memberID int64) ([]domain.Fine, error) {
	return list[domain.Fine](ctx, s.c, "fines", idPath(finesPath+"/member", memberID), nil)
}

func (s *FineService) ListByStatus(ctx context.Context, status domain.FineStatus) ([]domain.Fine, error) {
	return list[domain.Fine](ctx, s.c, "fines", finesPath, url.Values{"status": {string(status)}})
}

func (s *FineService) Create(ctx context.Context, f domain.Fine) (*domain.Fine, error) {
	return one[domain.Fine](ctx, s.c, "fines", http.MethodPost, finesPath, f)
}

func (s *FineService) Pay(ctx context.Context, id int64, amount float64) (*domain.Fine, error) {
	return one[domain.Fine](ctx, s.c, "fines", http.MethodPost, idPath(finesPath, id, "pay"), paymentRequest{Amount: amount})
}

func (s *FineService) Waive(ctx context.Context, id int64, reason string) (*domain.Fine, error) {
	return one[domain.Fine](ctx, s.c, "fines", http.MethodPost, idPath(finesPath, id, "waive"), waiveRequest{Reason: reason})
}
