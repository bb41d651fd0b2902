package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
)

// APIHandler exposes read-only JSON views for scripts and the CLI.
type APIHandler struct {
	catalog *service.CatalogService
}

func NewAPIHandler(catalog *service.CatalogService) *APIHandler {
	return &APIHandler{catalog: catalog}
}

type sessionResponse struct {
	Username     string      `json:"username"`
	Name         string      `json:"name,omitempty"`
	Role         domain.Role `json:"role"`
	MemberID     int64       `json:"member_id,omitempty"`
	LandingRoute string      `json:"landing_route"`
}

type booksResponse struct {
	Books      []domain.Book `json:"books"`
	Total      int           `json:"total"`
	Categories []string      `json:"categories"`
}

// Session returns the signed-in user.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/session [get]
func (h *APIHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Username:     sess.Username,
		Name:         sess.Name,
		Role:         sess.Role,
		MemberID:     sess.MemberID,
		LandingRoute: sess.Role.LandingRoute(),
	})
}

// Books returns the filtered catalog.
//
// @Summary      Search the catalog
// @Tags         books
// @Produce      json
// @Param        q          query     string  false  "Substring of title, author or ISBN"
// @Param        category   query     string  false  "Exact category"
// @Param        available  query     bool    false  "Only books with a copy on the shelf"
// @Success      200  {object}  booksResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/books [get]
func (h *APIHandler) Books(c echo.Context) error {
	page, err := h.catalog.Catalog(c.Request().Context(), bookQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booksResponse{
		Books:      page.Books,
		Total:      page.Total,
		Categories: page.Categories,
	})
}
