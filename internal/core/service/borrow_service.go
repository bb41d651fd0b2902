package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// DeskPage is the view model of the circulation desk: one member's loans
// plus the books matching the librarian's search.
type DeskPage struct {
	Member  *domain.Member
	Records []domain.BorrowRecord
	Search  string
	Results []domain.Book
	Flash   *Flash
}

// ActiveLoans counts records not yet returned.
func (p *DeskPage) ActiveLoans() int {
	n := 0
	for _, r := range p.Records {
		if !r.Returned() {
			n++
		}
	}
	return n
}

// BorrowService backs the circulation desk.
type BorrowService struct {
	borrow  ports.BorrowAPI
	members ports.MemberAPI
	books   ports.BookAPI
	journal ports.ActivityRecorder
	log     zerolog.Logger
}

func NewBorrowService(borrow ports.BorrowAPI, members ports.MemberAPI, books ports.BookAPI, journal ports.ActivityRecorder, log zerolog.Logger) *BorrowService {
	return &BorrowService{borrow: borrow, members: members, books: books, journal: recorderOrNop(journal), log: log}
}

// Desk loads the member, their loans and the book search in parallel. Any
// failure fails the whole page.
func (s *BorrowService) Desk(ctx context.Context, memberID int64, search string) (*DeskPage, error) {
	page := &DeskPage{Records: []domain.BorrowRecord{}, Results: []domain.Book{}, Search: search}
	if memberID <= 0 && strings.TrimSpace(search) == "" {
		return page, nil
	}

	var (
		member  *domain.Member
		records []domain.BorrowRecord
		results []domain.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	if memberID > 0 {
		g.Go(func() error {
			var err error
			member, err = s.members.Get(gctx, memberID)
			return err
		})
		g.Go(func() error {
			var err error
			records, err = s.borrow.ListByMember(gctx, memberID)
			return err
		})
	}
	if q := strings.TrimSpace(search); q != "" {
		g.Go(func() error {
			var err error
			results, err = s.books.Search(gctx, q)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Int64("member_id", memberID).Msg("load desk")
		return page, fmt.Errorf("load desk: %w", err)
	}

	page.Member = member
	if records != nil {
		page.Records = records
	}
	if results != nil {
		page.Results = results
	}
	return page, nil
}

// Lend checks a book out to a member and reloads the desk.
func (s *BorrowService) Lend(ctx context.Context, actor *domain.Session, memberID, bookID int64) (*DeskPage, error) {
	if memberID <= 0 {
		return nil, domain.Invalid("member is required")
	}
	if bookID <= 0 {
		return nil, domain.Invalid("book is required")
	}
	_, err := s.borrow.Borrow(ctx, memberID, bookID)
	record(s.journal, actor, "borrow.lend", target("book", bookID), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, memberID, "Book checked out.")
}

// Return records a returned book and reloads the desk.
func (s *BorrowService) Return(ctx context.Context, actor *domain.Session, memberID, recordID int64) (*DeskPage, error) {
	rec, err := s.borrow.Return(ctx, recordID)
	record(s.journal, actor, "borrow.return", target("borrow", recordID), err)
	if err != nil {
		return nil, err
	}
	msg := "Book returned."
	if rec != nil && rec.FineAmount > 0 {
		msg = fmt.Sprintf("Book returned late; a fine of %.2f was issued.", rec.FineAmount)
	}
	return s.reload(ctx, memberID, msg)
}

func (s *BorrowService) reload(ctx context.Context, memberID int64, msg string) (*DeskPage, error) {
	page, err := s.Desk(ctx, memberID, "")
	if err != nil {
		page.Flash = Failure(err)
		return page, nil
	}
	page.Flash = Success(msg)
	return page, nil
}
