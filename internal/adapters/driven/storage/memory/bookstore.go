package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
// Books are copied on the way in and out so callers cannot alter stored content.
type BookStore struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books: make(map[string]domain.Book),
	}
}

// Save stores or replaces a book.
func (s *BookStore) Save(_ context.Context, book domain.Book) error {
	if book.ISBN == "" {
		return domain.ErrMissingISBN
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.ISBN] = cloneBook(book)
	return nil
}

// Get retrieves a book by ISBN.
func (s *BookStore) Get(_ context.Context, isbn string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[isbn]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneBook(book)
	return &out, nil
}

// List returns all books ordered by ISBN.
func (s *BookStore) List(_ context.Context) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]domain.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, cloneBook(book))
	}
	slices.SortFunc(books, func(a, b domain.Book) int {
		return strings.Compare(a.ISBN, b.ISBN)
	})
	return books, nil
}

// Delete removes a book by ISBN.
func (s *BookStore) Delete(_ context.Context, isbn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[isbn]; !ok {
		return domain.ErrNotFound
	}
	delete(s.books, isbn)
	return nil
}

func cloneBook(b domain.Book) domain.Book {
	b.Content = slices.Clone(b.Content)
	return b
}
