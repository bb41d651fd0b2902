package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

const (
	booksTitle   = "Books"
	catalogTitle = "Catalog"
)

// BookHandler serves book management for staff and the member catalog.
type BookHandler struct {
	catalog      *service.CatalogService
	reservations *service.ReservationService
}

func NewBookHandler(catalog *service.CatalogService, reservations *service.ReservationService) *BookHandler {
	return &BookHandler{catalog: catalog, reservations: reservations}
}

func bookQuery(c echo.Context) service.BookQuery {
	available, _ := strconv.ParseBool(c.QueryParam("available"))
	return service.BookQuery{
		Search:        c.QueryParam("q"),
		Category:      c.QueryParam("category"),
		AvailableOnly: available,
	}
}

// List is the staff book list.
func (h *BookHandler) List(c echo.Context) error {
	page, err := h.catalog.Catalog(c.Request().Context(), bookQuery(c))
	return renderPage(c, http.StatusOK, "books", booksTitle, page, failed(err))
}

func (h *BookHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var form bookForm
	if err := bindForm(c, &form); err != nil {
		return h.listWithError(c, err)
	}
	page, err := h.catalog.CreateBook(c.Request().Context(), sess, form.book())
	if err != nil {
		return h.listWithError(c, err)
	}
	return renderPage(c, http.StatusOK, "books", booksTitle, page, page.Flash)
}

type bookFormView struct {
	Book domain.Book
}

func (h *BookHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	book, err := h.catalog.Book(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "book_form", "Edit "+book.Title, bookFormView{Book: *book}, nil)
}

func (h *BookHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form bookForm
	if err := bindForm(c, &form); err != nil {
		b := form.book()
		b.ID = id
		return renderPage(c, flashStatus(err), "book_form", "Edit "+b.Title, bookFormView{Book: b}, failed(err))
	}
	page, err := h.catalog.UpdateBook(c.Request().Context(), sess, id, form.book())
	if err != nil {
		return h.listWithError(c, err)
	}
	return renderPage(c, http.StatusOK, "books", booksTitle, page, page.Flash)
}

func (h *BookHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	page, err := h.catalog.DeleteBook(c.Request().Context(), sess, id)
	if err != nil {
		return h.listWithError(c, err)
	}
	return renderPage(c, http.StatusOK, "books", booksTitle, page, page.Flash)
}

// listWithError reloads the list and shows why the action failed.
func (h *BookHandler) listWithError(c echo.Context, cause error) error {
	page, _ := h.catalog.Catalog(c.Request().Context(), service.BookQuery{})
	return renderPage(c, flashStatus(cause), "books", booksTitle, page, failed(cause))
}

// Catalog is the member-facing book search.
func (h *BookHandler) Catalog(c echo.Context) error {
	page, err := h.catalog.Catalog(c.Request().Context(), bookQuery(c))
	return renderPage(c, http.StatusOK, "catalog", catalogTitle, page, failed(err))
}

// Reserve places a hold for the signed-in member and shows their reservations.
func (h *BookHandler) Reserve(c echo.Context) error {
	sess, err := memberSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	filter := service.ReservationFilter{MemberID: sess.MemberID}
	page, err := h.reservations.Reserve(c.Request().Context(), sess, sess.MemberID, id, filter)
	if err != nil {
		catalog, _ := h.catalog.Catalog(c.Request().Context(), service.BookQuery{})
		return renderPage(c, flashStatus(err), "catalog", catalogTitle, catalog, failed(err))
	}
	return renderPage(c, http.StatusOK, "reservations", myReservationsTitle, reservationsView{
		Page: page, BaseURL: memberReservationsURL,
	}, page.Flash)
}
