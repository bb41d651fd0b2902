package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/service"
)

const deskTitle = "Circulation desk"

// DeskHandler is the librarian's lend and return screen.
type DeskHandler struct {
	borrow *service.BorrowService
}

func NewDeskHandler(borrow *service.BorrowService) *DeskHandler {
	return &DeskHandler{borrow: borrow}
}

func (h *DeskHandler) Show(c echo.Context) error {
	page, err := h.borrow.Desk(c.Request().Context(), queryInt(c, "member"), c.QueryParam("q"))
	return renderPage(c, http.StatusOK, "desk", deskTitle, page, failed(err))
}

func (h *DeskHandler) Lend(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form lendForm
	if err := bindForm(c, &form); err != nil {
		return h.deskWithError(c, form.MemberID, err)
	}
	page, err := h.borrow.Lend(c.Request().Context(), sess, form.MemberID, form.BookID)
	if err != nil {
		return h.deskWithError(c, form.MemberID, err)
	}
	return renderPage(c, http.StatusOK, "desk", deskTitle, page, page.Flash)
}

func (h *DeskHandler) Return(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form returnForm
	if err := bindForm(c, &form); err != nil {
		return h.deskWithError(c, form.MemberID, err)
	}
	page, err := h.borrow.Return(c.Request().Context(), sess, form.MemberID, form.RecordID)
	if err != nil {
		return h.deskWithError(c, form.MemberID, err)
	}
	return renderPage(c, http.StatusOK, "desk", deskTitle, page, page.Flash)
}

func (h *DeskHandler) deskWithError(c echo.Context, memberID int64, cause error) error {
	page, _ := h.borrow.Desk(c.Request().Context(), memberID, "")
	return renderPage(c, flashStatus(cause), "desk", deskTitle, page, failed(cause))
}
