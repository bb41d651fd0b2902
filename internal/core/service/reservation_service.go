package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// ReservationFilter selects which reservations a page shows.
type ReservationFilter struct {
	// MemberID of zero loads every reservation.
	MemberID int64
	Status   domain.ReservationStatus
}

// ReservationsPage is the view model of the reservation screens.
type ReservationsPage struct {
	Reservations []domain.Reservation
	Counts       map[domain.ReservationStatus]int
	Filter       ReservationFilter
	Flash        *Flash
}

// TransitionInput moves a reservation from the status the page showed to Target.
type TransitionInput struct {
	ID      int64
	Current domain.ReservationStatus
	Target  domain.ReservationStatus
}

// ReservationService backs the reservation screens.
type ReservationService struct {
	reservations ports.ReservationAPI
	journal      ports.ActivityRecorder
	log          zerolog.Logger
}

func NewReservationService(reservations ports.ReservationAPI, journal ports.ActivityRecorder, log zerolog.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, journal: recorderOrNop(journal), log: log}
}

// Reservations loads the list and derives the tab view.
func (s *ReservationService) Reservations(ctx context.Context, f ReservationFilter) (*ReservationsPage, error) {
	var (
		all []domain.Reservation
		err error
	)
	if f.MemberID > 0 {
		all, err = s.reservations.ListByMember(ctx, f.MemberID)
	} else {
		all, err = s.reservations.List(ctx)
	}
	if err != nil {
		s.log.Warn().Err(err).Int64("member_id", f.MemberID).Msg("load reservations")
		return &ReservationsPage{
			Reservations: []domain.Reservation{},
			Counts:       map[domain.ReservationStatus]int{},
			Filter:       f,
		}, fmt.Errorf("load reservations: %w", err)
	}
	return &ReservationsPage{
		Reservations: FilterReservations(all, f.Status),
		Counts:       CountReservations(all),
		Filter:       f,
	}, nil
}

// Reserve places a hold for the member on a book.
func (s *ReservationService) Reserve(ctx context.Context, actor *domain.Session, memberID, bookID int64, reload ReservationFilter) (*ReservationsPage, error) {
	if memberID <= 0 {
		return nil, domain.Invalid("member is required")
	}
	if bookID <= 0 {
		return nil, domain.Invalid("book is required")
	}
	_, err := s.reservations.Create(ctx, memberID, bookID)
	record(s.journal, actor, "reservation.create", target("book", bookID), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, reload, "Reservation placed.")
}

// Transition approves, notifies, fulfills or cancels a reservation.
func (s *ReservationService) Transition(ctx context.Context, actor *domain.Session, in TransitionInput, reload ReservationFilter) (*ReservationsPage, error) {
	if !in.Current.CanTransitionTo(in.Target) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, in.Current, in.Target)
	}

	var call func(context.Context, int64) (*domain.Reservation, error)
	switch in.Target {
	case domain.ReservationApproved:
		call = s.reservations.Approve
	case domain.ReservationNotified:
		call = s.reservations.Notify
	case domain.ReservationFulfilled:
		call = s.reservations.Fulfill
	case domain.ReservationCancelled:
		call = s.reservations.Cancel
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, in.Target)
	}

	_, err := call(ctx, in.ID)
	record(s.journal, actor, "reservation."+string(in.Target), target("reservation", in.ID), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, reload, fmt.Sprintf("Reservation %d is now %s.", in.ID, in.Target))
}

func (s *ReservationService) reload(ctx context.Context, f ReservationFilter, msg string) (*ReservationsPage, error) {
	page, err := s.Reservations(ctx, f)
	if err != nil {
		page.Flash = Failure(err)
		return page, nil
	}
	page.Flash = Success(msg)
	return page, nil
}
