package service

import (
	"context"
	"errors"
	"testing"

	"github.com/librarydesk/console/internal/core/domain"
)

func seededReservations() *stubReservationAPI {
	return &stubReservationAPI{reservations: []domain.Reservation{
		{ID: 1, MemberID: 7, BookID: 1, Status: domain.ReservationPending},
		{ID: 2, MemberID: 8, BookID: 2, Status: domain.ReservationApproved},
		{ID: 3, MemberID: 7, BookID: 3, Status: domain.ReservationFulfilled},
	}}
}

func TestReservationService_Transition_Approve(t *testing.T) {
	api := seededReservations()
	svc := NewReservationService(api, nil, discardLogger)

	page, err := svc.Transition(context.Background(), librarian, TransitionInput{
		ID: 1, Current: domain.ReservationPending, Target: domain.ReservationApproved,
	}, ReservationFilter{})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if len(api.calls) != 2 || api.calls[0] != "approve" || api.calls[1] != "list" {
		t.Fatalf("expected approve then reload, got %v", api.calls)
	}
	if page.Reservations[0].Status != domain.ReservationApproved {
		t.Fatalf("expected reloaded status, got %+v", page.Reservations[0])
	}
	if page.Counts[domain.ReservationApproved] != 2 {
		t.Fatalf("unexpected counts %v", page.Counts)
	}
}

func TestReservationService_Transition_Invalid(t *testing.T) {
	api := seededReservations()
	svc := NewReservationService(api, nil, discardLogger)

	cases := []TransitionInput{
		{ID: 3, Current: domain.ReservationFulfilled, Target: domain.ReservationCancelled},
		{ID: 1, Current: domain.ReservationPending, Target: domain.ReservationFulfilled},
		{ID: 1, Current: domain.ReservationPending, Target: domain.ReservationExpired},
	}
	for _, in := range cases {
		if _, err := svc.Transition(context.Background(), librarian, in, ReservationFilter{}); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("%+v: expected ErrInvalidTransition, got %v", in, err)
		}
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", api.calls)
	}
}

func TestReservationService_FullLifecycle(t *testing.T) {
	api := seededReservations()
	svc := NewReservationService(api, nil, discardLogger)
	ctx := context.Background()

	steps := []domain.ReservationStatus{domain.ReservationApproved, domain.ReservationNotified, domain.ReservationFulfilled}
	current := domain.ReservationPending
	for _, next := range steps {
		if _, err := svc.Transition(ctx, librarian, TransitionInput{ID: 1, Current: current, Target: next}, ReservationFilter{}); err != nil {
			t.Fatalf("%s -> %s: %v", current, next, err)
		}
		current = next
	}
	if api.reservations[0].Status != domain.ReservationFulfilled {
		t.Fatalf("expected fulfilled, got %s", api.reservations[0].Status)
	}
}

func TestReservationService_Reserve_MemberScope(t *testing.T) {
	api := seededReservations()
	svc := NewReservationService(api, nil, discardLogger)
	member := &domain.Session{Username: "m", Role: domain.RoleMember, MemberID: 7}

	page, err := svc.Reserve(context.Background(), member, 7, 9, ReservationFilter{MemberID: 7})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if len(page.Reservations) != 3 {
		t.Fatalf("expected the member's 3 reservations, got %d", len(page.Reservations))
	}
	for _, r := range page.Reservations {
		if r.MemberID != 7 {
			t.Fatalf("reservation of another member leaked: %+v", r)
		}
	}
}

func TestReservationService_Reservations_Tab(t *testing.T) {
	svc := NewReservationService(seededReservations(), nil, discardLogger)

	page, err := svc.Reservations(context.Background(), ReservationFilter{Status: domain.ReservationPending})
	if err != nil {
		t.Fatalf("Reservations: %v", err)
	}
	if len(page.Reservations) != 1 || page.Reservations[0].ID != 1 {
		t.Fatalf("unexpected tab %+v", page.Reservations)
	}
}
