package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/service"
)

const adminsTitle = "Staff accounts"

type adminsView struct {
	Page *service.AdminsPage
	// Self is the signed-in username; the page offers no destructive actions on it.
	Self string
}

// AdminHandler manages administrator and librarian accounts.
type AdminHandler struct {
	admins *service.AdminService
}

func NewAdminHandler(admins *service.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

func (h *AdminHandler) render(c echo.Context, code int, page *service.AdminsPage, flash *service.Flash) error {
	self := ""
	if sess, err := ctxSession(c); err == nil {
		self = sess.Username
	}
	return renderPage(c, code, "admins", adminsTitle, adminsView{Page: page, Self: self}, flash)
}

func (h *AdminHandler) List(c echo.Context) error {
	page, err := h.admins.Admins(c.Request().Context())
	return h.render(c, http.StatusOK, page, failed(err))
}

func (h *AdminHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form adminForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, err)
	}
	page, err := h.admins.CreateAdmin(c.Request().Context(), sess, form.admin())
	if err != nil {
		return h.listWithError(c, err)
	}
	return h.render(c, http.StatusOK, page, page.Flash)
}

func (h *AdminHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.admins.Admin(c.Request().Context(), id)
	if err != nil {
		return err
	}
	a.Password = ""
	return renderPage(c, http.StatusOK, "admin_form", "Edit "+a.Username, *a, nil)
}

func (h *AdminHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form adminForm
	if err := bindForm(c, &form); err != nil {
		a := form.admin()
		a.ID = id
		a.Password = ""
		return renderPage(c, flashStatus(err), "admin_form", "Edit "+a.Username, a, failed(err))
	}
	page, err := h.admins.UpdateAdmin(c.Request().Context(), sess, id, form.admin())
	if err != nil {
		return h.listWithError(c, err)
	}
	return h.render(c, http.StatusOK, page, page.Flash)
}

// SetStatus activates or deactivates an account.
func (h *AdminHandler) SetStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form accountForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, err)
	}
	page, err := h.admins.SetActive(c.Request().Context(), sess, id, form.Username, form.Active)
	if err != nil {
		return h.listWithError(c, err)
	}
	return h.render(c, http.StatusOK, page, page.Flash)
}

func (h *AdminHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form accountForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, err)
	}
	page, err := h.admins.DeleteAdmin(c.Request().Context(), sess, id, form.Username)
	if err != nil {
		return h.listWithError(c, err)
	}
	return h.render(c, http.StatusOK, page, page.Flash)
}

func (h *AdminHandler) listWithError(c echo.Context, cause error) error {
	page, _ := h.admins.Admins(c.Request().Context())
	return h.render(c, flashStatus(cause), page, failed(cause))
}
