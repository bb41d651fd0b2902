package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/librarydesk/console/internal/core/domain"
)

const booksPath = "/api/books"

// BookService wraps /api/books.
type BookService struct {
	c *Client
}

func NewBookService(c *Client) *BookService { return &BookService{c: c} }

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return list[domain.Book](ctx, s.c, "books", booksPath, nil)
}

func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return one[domain.Book](ctx, s.c, "books", http.MethodGet, idPath(booksPath, id), nil)
}

func (s *BookService) Search(ctx context.Context, query string) ([]domain.Book, error) {
	return list[domain.Book](ctx, s.c, "books", booksPath+"/search", url.Values{"q": {query}})
}

func (s *BookService) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	return one[domain.Book](ctx, s.c, "books", http.MethodPost, booksPath, b)
}

func (s *BookService) Update(ctx context.Context, id int64, b domain.Book) (*domain.Book, error) {
	return one[domain.Book](ctx, s.c, "books", http.MethodPut, idPath(booksPath, id), b)
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, "books", http.MethodDelete, idPath(booksPath, id), nil, nil, nil)
}
