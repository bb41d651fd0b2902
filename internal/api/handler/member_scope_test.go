package handler

import (
	"errors"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/domain"
)

// Member screens must never fall through to the unscoped staff lists. The
// handlers here are built without services, so any load would panic.
func TestMemberScreens_WithoutMemberIDFailClosed(t *testing.T) {
	e := newTestEcho(t)
	reservations := NewReservationHandler(nil)
	books := NewBookHandler(nil, nil)
	dashboards := NewDashboardHandler(nil)

	cases := []struct {
		name   string
		target string
		call   func(c echo.Context) error
	}{
		{"my reservations", "/member/reservations", reservations.Mine},
		{"cancel reservation", "/member/reservations/3/cancel", reservations.Cancel},
		{"reserve book", "/member/books/2/reserve", books.Reserve},
		{"member dashboard", "/member/dashboard", dashboards.Member},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := get(e, tc.target)
			c.SetParamNames("id")
			c.SetParamValues("3")
			signIn(c, unlinked)

			if err := tc.call(c); !errors.Is(err, domain.ErrNoMemberAccount) {
				t.Fatalf("expected ErrNoMemberAccount, got %v", err)
			}
		})
	}
}
