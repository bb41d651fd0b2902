package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

const (
	finesTitle     = "Fines"
	myFinesTitle   = "My fines"
	staffFinesURL  = "/librarian/fines"
	memberFinesURL = "/member/fines"
)

type finesView struct {
	Page    *service.FinesPage
	Manage  bool
	BaseURL string
}

// FineHandler serves fine management and the member's own fines.
type FineHandler struct {
	fines *service.FineService
}

func NewFineHandler(fines *service.FineService) *FineHandler {
	return &FineHandler{fines: fines}
}

func fineFilter(status string, memberID int64) service.FineFilter {
	return service.FineFilter{MemberID: memberID, Status: domain.FineStatus(status)}
}

func (h *FineHandler) staffPage(c echo.Context, code int, page *service.FinesPage, flash *service.Flash) error {
	return renderPage(c, code, "fines", finesTitle, finesView{Page: page, Manage: true, BaseURL: staffFinesURL}, flash)
}

// List shows every fine, or one member's when ?member= is set.
func (h *FineHandler) List(c echo.Context) error {
	page, err := h.fines.Fines(c.Request().Context(), fineFilter(c.QueryParam("status"), queryInt(c, "member")))
	return h.staffPage(c, http.StatusOK, page, failed(err))
}

func (h *FineHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form fineForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, form.Tab, err)
	}
	fine := domain.Fine{MemberID: form.MemberID, Amount: form.Amount, Reason: form.Reason}
	page, err := h.fines.IssueFine(c.Request().Context(), sess, fine, fineFilter(form.Tab, 0))
	if err != nil {
		return h.listWithError(c, form.Tab, err)
	}
	return h.staffPage(c, http.StatusOK, page, page.Flash)
}

// Pay records a payment. A payment above the outstanding balance is refused
// without contacting the backend.
func (h *FineHandler) Pay(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form paymentForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, form.Tab, err)
	}
	page, err := h.fines.RecordPayment(c.Request().Context(), sess, service.PaymentInput{
		FineID:     id,
		Payment:    form.Payment,
		Amount:     form.Amount,
		AmountPaid: form.AmountPaid,
		Status:     domain.FineStatus(form.Status),
	}, fineFilter(form.Tab, 0))
	if err != nil {
		return h.listWithError(c, form.Tab, err)
	}
	return h.staffPage(c, http.StatusOK, page, page.Flash)
}

func (h *FineHandler) Waive(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form waiveForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, form.Tab, err)
	}
	page, err := h.fines.Waive(c.Request().Context(), sess, id, form.Reason, fineFilter(form.Tab, 0))
	if err != nil {
		return h.listWithError(c, form.Tab, err)
	}
	return h.staffPage(c, http.StatusOK, page, page.Flash)
}

func (h *FineHandler) listWithError(c echo.Context, tab string, cause error) error {
	page, _ := h.fines.Fines(c.Request().Context(), fineFilter(tab, 0))
	return h.staffPage(c, flashStatus(cause), page, failed(cause))
}

// Mine lists the signed-in member's fines.
func (h *FineHandler) Mine(c echo.Context) error {
	sess, err := memberSession(c)
	if err != nil {
		return err
	}
	page, err := h.fines.Fines(c.Request().Context(), fineFilter(c.QueryParam("status"), sess.MemberID))
	return renderPage(c, http.StatusOK, "fines", myFinesTitle, finesView{Page: page, BaseURL: memberFinesURL}, failed(err))
}
