package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

const (
	reservationsTitle     = "Reservations"
	myReservationsTitle   = "My reservations"
	staffReservationsURL  = "/librarian/reservations"
	memberReservationsURL = "/member/reservations"
)

type reservationsView struct {
	Page    *service.ReservationsPage
	Manage  bool
	BaseURL string
}

// ReservationHandler drives the reservation lifecycle for librarians and
// lets members follow and cancel their own holds.
type ReservationHandler struct {
	reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

func reservationFilter(status string, memberID int64) service.ReservationFilter {
	return service.ReservationFilter{MemberID: memberID, Status: domain.ReservationStatus(status)}
}

func (h *ReservationHandler) List(c echo.Context) error {
	page, err := h.reservations.Reservations(c.Request().Context(), reservationFilter(c.QueryParam("status"), 0))
	return renderPage(c, http.StatusOK, "reservations", reservationsTitle, reservationsView{
		Page: page, Manage: true, BaseURL: staffReservationsURL,
	}, failed(err))
}

// Transition approves, notifies, fulfills or cancels one reservation.
func (h *ReservationHandler) Transition(c echo.Context) error {
	return h.transition(c, 0, true)
}

// Mine lists the signed-in member's reservations.
func (h *ReservationHandler) Mine(c echo.Context) error {
	sess, err := memberSession(c)
	if err != nil {
		return err
	}
	page, err := h.reservations.Reservations(c.Request().Context(), reservationFilter(c.QueryParam("status"), sess.MemberID))
	return renderPage(c, http.StatusOK, "reservations", myReservationsTitle, reservationsView{
		Page: page, BaseURL: memberReservationsURL,
	}, failed(err))
}

// Cancel lets a member withdraw one of their holds.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	sess, err := memberSession(c)
	if err != nil {
		return err
	}
	return h.transition(c, sess.MemberID, false)
}

func (h *ReservationHandler) transition(c echo.Context, memberID int64, manage bool) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	title, base := reservationsTitle, staffReservationsURL
	if !manage {
		title, base = myReservationsTitle, memberReservationsURL
	}

	var form transitionForm
	err = bindForm(c, &form)
	filter := reservationFilter(form.Tab, memberID)

	var page *service.ReservationsPage
	if err == nil {
		target := domain.ReservationStatus(form.Target)
		if !manage {
			target = domain.ReservationCancelled
		}
		page, err = h.reservations.Transition(c.Request().Context(), sess, service.TransitionInput{
			ID:      id,
			Current: domain.ReservationStatus(form.Current),
			Target:  target,
		}, filter)
	}
	if err != nil {
		page, _ = h.reservations.Reservations(c.Request().Context(), filter)
		return renderPage(c, flashStatus(err), "reservations", title, reservationsView{
			Page: page, Manage: manage, BaseURL: base,
		}, failed(err))
	}
	return renderPage(c, http.StatusOK, "reservations", title, reservationsView{
		Page: page, Manage: manage, BaseURL: base,
	}, page.Flash)
}
