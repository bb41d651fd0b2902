package backend

import (
	"context"
	"net/http"

	"github.com/librarydesk/console/internal/core/domain"
)

const borrowPath = "/api/borrow"

// BorrowService wraps /api/borrow.
type BorrowService struct {
	c *Client
}

func NewBorrowService(c *Client) *BorrowService { return &BorrowService{c: c} }

type borrowRequest struct {
	MemberID int64 `json:"memberId"`
	BookID   int64 `json:"bookId"`
}

func (s *BorrowService) ListByMember(ctx context.Context, memberID int64) ([]domain.BorrowRecord, error) {
	return list[domain.BorrowRecord](ctx, s.c, "borrow", idPath(borrowPath+"/member", memberID), nil)
}

func (s *BorrowService) Overdue(ctx context.Context) ([]domain.BorrowRecord, error) {
	return list[domain.BorrowRecord](ctx, s.c, "borrow", borrowPath+"/overdue", nil)
}

func (s *BorrowService) Borrow(ctx context.Context, memberID, bookID int64) (*domain.BorrowRecord, error) {
	return one[domain.BorrowRecord](ctx, s.c, "borrow", http.MethodPost, borrowPath, borrowRequest{MemberID: memberID, BookID: bookID})
}

func (s *BorrowService) Return(ctx context.Context, recordID int64) (*domain.BorrowRecord, error) {
	return one[domain.BorrowRecord](ctx, s.c, "borrow", http.MethodPost, idPath(borrowPath, recordID, "return"), nil)
}
