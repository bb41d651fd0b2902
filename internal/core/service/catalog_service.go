package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

// CatalogPage is the view model of the book list screens.
type CatalogPage struct {
	Books      []domain.Book
	Total      int
	Categories []string
	Query      BookQuery
	Flash      *Flash
}

// CatalogService backs the book management and member catalog screens.
type CatalogService struct {
	books   ports.BookAPI
	journal ports.ActivityRecorder
	log     zerolog.Logger
}

func NewCatalogService(books ports.BookAPI, journal ports.ActivityRecorder, log zerolog.Logger) *CatalogService {
	return &CatalogService{books: books, journal: recorderOrNop(journal), log: log}
}

// Catalog loads every book and derives the filtered view. On failure the page
// is empty and the error is returned for the banner.
func (s *CatalogService) Catalog(ctx context.Context, q BookQuery) (*CatalogPage, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("load catalog")
		return &CatalogPage{Books: []domain.Book{}, Query: q}, fmt.Errorf("load catalog: %w", err)
	}
	return &CatalogPage{
		Books:      FilterBooks(books, q),
		Total:      len(books),
		Categories: Categories(books),
		Query:      q,
	}, nil
}

// Book loads one book for the edit form.
func (s *CatalogService) Book(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.Get(ctx, id)
}

// CreateBook validates b, creates it and reloads the catalog.
func (s *CatalogService) CreateBook(ctx context.Context, actor *domain.Session, b domain.Book) (*CatalogPage, error) {
	if err := validateBook(b); err != nil {
		return nil, err
	}
	created, err := s.books.Create(ctx, b)
	if err != nil {
		record(s.journal, actor, "book.create", b.Title, err)
		return nil, err
	}
	record(s.journal, actor, "book.create", target("book", created.ID), nil)
	return s.reload(ctx, fmt.Sprintf("Book %q added.", b.Title))
}

// UpdateBook validates b, updates book id and reloads the catalog.
func (s *CatalogService) UpdateBook(ctx context.Context, actor *domain.Session, id int64, b domain.Book) (*CatalogPage, error) {
	if err := validateBook(b); err != nil {
		return nil, err
	}
	b.ID = id
	_, err := s.books.Update(ctx, id, b)
	record(s.journal, actor, "book.update", target("book", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, fmt.Sprintf("Book %q updated.", b.Title))
}

// DeleteBook removes book id and reloads the catalog.
func (s *CatalogService) DeleteBook(ctx context.Context, actor *domain.Session, id int64) (*CatalogPage, error) {
	err := s.books.Delete(ctx, id)
	record(s.journal, actor, "book.delete", target("book", id), err)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, "Book deleted.")
}

// reload always refetches the full list after a mutation.
func (s *CatalogService) reload(ctx context.Context, msg string) (*CatalogPage, error) {
	page, err := s.Catalog(ctx, BookQuery{})
	if err != nil {
		page.Flash = Failure(err)
		return page, nil
	}
	page.Flash = Success(msg)
	return page, nil
}

func validateBook(b domain.Book) error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return domain.Invalid("title is required")
	case strings.TrimSpace(b.Author) == "":
		return domain.Invalid("author is required")
	case strings.TrimSpace(b.ISBN) == "":
		return domain.Invalid("isbn is required")
	}
	return b.Validate()
}
