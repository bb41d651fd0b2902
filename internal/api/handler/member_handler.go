package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/service"
)

const membersTitle = "Members"

type MemberHandler struct {
	members *service.MemberService
}

func NewMemberHandler(members *service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

func (h *MemberHandler) List(c echo.Context) error {
	page, err := h.members.Members(c.Request().Context(), c.QueryParam("q"))
	return renderPage(c, http.StatusOK, "members", membersTitle, page, failed(err))
}

func (h *MemberHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form memberForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, err)
	}
	page, err := h.members.CreateMember(c.Request().Context(), sess, form.member())
	if err != nil {
		return h.listWithError(c, err)
	}
	return renderPage(c, http.StatusOK, "members", membersTitle, page, page.Flash)
}

func (h *MemberHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := h.members.Member(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "member_form", "Edit "+m.Name, *m, nil)
}

func (h *MemberHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form memberForm
	if err := bindForm(c, &form); err != nil {
		m := form.member()
		m.ID = id
		return renderPage(c, flashStatus(err), "member_form", "Edit "+m.Name, m, failed(err))
	}
	page, err := h.members.UpdateMember(c.Request().Context(), sess, id, form.member())
	if err != nil {
		return h.listWithError(c, err)
	}
	return renderPage(c, http.StatusOK, "members", membersTitle, page, page.Flash)
}

func (h *MemberHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	page, err := h.members.DeleteMember(c.Request().Context(), sess, id)
	if err != nil {
		return h.listWithError(c, err)
	}
	return renderPage(c, http.StatusOK, "members", membersTitle, page, page.Flash)
}

func (h *MemberHandler) listWithError(c echo.Context, cause error) error {
	page, _ := h.members.Members(c.Request().Context(), "")
	return renderPage(c, flashStatus(cause), "members", membersTitle, page, failed(cause))
}
