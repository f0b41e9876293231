package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driven"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
	"github.com/custodia-labs/pagescan/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the stored book library.
type LibraryService struct {
	bookStore driven.BookStore
}

// NewLibraryService creates a new library service.
func NewLibraryService(bookStore driven.BookStore) *LibraryService {
	return &LibraryService{
		bookStore: bookStore,
	}
}

// Import reads a JSON array of books and stores every book with an ISBN.
// Books without one cannot be attributed in search results and are skipped.
func (s *LibraryService) Import(ctx context.Context, r io.Reader) (*driving.ImportResult, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}

	books, err := domain.DecodeBooks(r)
	if err != nil {
		return nil, err
	}

	result := &driving.ImportResult{BatchID: uuid.New().String()}
	logger.Section("Library Import")
	logger.Debug("Batch %s: %d books", result.BatchID, len(books))

	for i := range books {
		book := books[i]
		if book.ISBN == "" {
			logger.Warn("Skipping book %d (%q): no ISBN", i, book.Title)
			result.Skipped++
			continue
		}
		book.BatchID = result.BatchID
		if err := s.bookStore.Save(ctx, book); err != nil {
			return nil, fmt.Errorf("save book %s: %w", book.ISBN, err)
		}
		result.Imported++
	}

	logger.Info("Imported %d books, skipped %d", result.Imported, result.Skipped)
	return result, nil
}

// Add stores a single book, replacing any book with the same ISBN.
func (s *LibraryService) Add(ctx context.Context, book domain.Book) error {
	if s.bookStore == nil {
		return domain.ErrNotImplemented
	}
	if book.ISBN == "" {
		return domain.ErrMissingISBN
	}
	return s.bookStore.Save(ctx, book)
}

// Get retrieves a book by ISBN.
func (s *LibraryService) Get(ctx context.Context, isbn string) (*domain.Book, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.bookStore.Get(ctx, isbn)
}

// List returns every stored book ordered by ISBN.
func (s *LibraryService) List(ctx context.Context) ([]domain.Book, error) {
	if s.bookStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.bookStore.List(ctx)
}

// Remove deletes a book by ISBN.
func (s *LibraryService) Remove(ctx context.Context, isbn string) error {
	if s.bookStore == nil {
		return domain.ErrNotImplemented
	}
	return s.bookStore.Delete(ctx, isbn)
}
