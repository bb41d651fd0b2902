package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// FineFilter selects which fines a page shows.
type FineFilter struct {
	// MemberID of zero loads every fine.
	MemberID int64
	Status   domain.FineStatus
}

// FinesPage is the view model of the fines screens.
type FinesPage struct {
	Fines       []domain.Fine
	Counts      map[domain.FineStatus]int
	Outstanding float64
	Filter      FineFilter
	Flash       *Flash
}

// PaymentInput is a payment against a fine as shown on the page the user
// submitted from. Amount, AmountPaid and Status are that page's copy of the
// fine and are only used for local validation.
type PaymentInput struct {
	FineID     int64
	Payment    float64
	Amount     float64
	AmountPaid float64
	Status     domain.FineStatus
}

// FineService backs the fine management screens.
type FineService struct {
	fines   ports.FineAPI
	journal ports.ActivityRecorder
	log     zerolog.Logger
}

func NewFineService(fines ports.FineAPI, journal ports.ActivityRecorder, log zerolog.Logger) *FineService {
	return &FineService{fines: fines, journal: recorderOrNop(journal), log: log}
}

// Fines loads the fine list and derives the tab view.
func (s *FineService) Fines(ctx context.Context, f FineFilter) (*FinesPage, error) {
	var (
		all []domain.Fine
		err error
	)
	if f.MemberID > 0 {
		all, err = s.fines.ListByMember(ctx, f.MemberID)
	} else {
		all, err = s.fines.List(ctx)
	}
	if err != nil {
		s.log.Warn().Err(err).Int64("member_id", f.MemberID).Msg("load fines")
		return &FinesPage{Fines: []domain.Fine{}, Counts: map[domain.FineStatus]int{}, Filter: f}, fmt.Errorf("load fines: %w", err)
	}

	counts := make(map[domain.FineStatus]int, len(domain.FineStatuses))
	for _, fine := range all {
		counts[fine.Status]++
	}
	return &FinesPage{
		Fines:       FilterFines(all, f.Status),
		Counts:      counts,
		Outstanding: OutstandingTotal(all),
		Filter:      f,
	}, nil
}

// IssueFine creates a fine for a member.
func (s *FineService) IssueFine(ctx context.Context, actor *domain.Session, f domain.Fine, reload FineFilter) (*FinesPage, error) {
	switch {
	case f.MemberID <= 0:
		return nil, domain.Invalid("member is required")
	case f.Amount <= 0:
		return nil, domain.Invalid("amount must be greater than zero")
	case strings.TrimSpace(f.Reason) == "":
		return nil, domain.Invalid("reason is required")
	}
	f.Status = domain.FineUnpaid
	f.AmountPaid = 0

	created, err := s.fines.Create(ctx, f)
	if err != nil {
		record(s.journal, actor, "fine.create", target("member", f.MemberID), err)
		return nil, err
	}
	record(s.journal, actor, "fine.create", target("fine", created.ID), nil)
	return s.reload(ctx, reload, fmt.Sprintf("Fine of %.2f issued.", f.Amount))
}

// RecordPayment rejects a payment above the outstanding balance before
// contacting the backend.
func (s *FineService) RecordPayment(ctx context.Context, actor *domain.Session, in PaymentInput, reload FineFilter) (*FinesPage, error) {
	snapshot := domain.Fine{ID: in.FineID, Amount: in.Amount, AmountPaid: in.AmountPaid, Status: in.Status}
	if err := snapshot.ValidatePayment(in.Payment); err != nil {
		return nil, err
	}

	_, err := s.fines.Pay(ctx, in.FineID, in.Payment)
	record(s.journal, actor, "fine.pay", target("fine", in.FineID), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, reload, fmt.Sprintf("Payment of %.2f recorded.", in.Payment))
}

// Waive forgives the remaining balance of a fine.
func (s *FineService) Waive(ctx context.Context, actor *domain.Session, id int64, reason string, reload FineFilter) (*FinesPage, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.Invalid("a reason is required to waive a fine")
	}
	_, err := s.fines.Waive(ctx, id, reason)
	record(s.journal, actor, "fine.waive", target("fine", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, reload, "Fine waived.")
}

func (s *FineService) reload(ctx context.Context, f FineFilter, msg string) (*FinesPage, error) {
	page, err := s.Fines(ctx, f)
	if err != nil {
		page.Flash = Failure(err)
		return page, nil
	}
	page.Flash = Success(msg)
	return page, nil
}
