package driven

import (
	"context"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

// BookStore persists scanned books keyed by ISBN.
type BookStore interface {
	// Save stores or replaces a book. The book must have an ISBN.
	Save(ctx context.Context, book domain.Book) error

	// Get retrieves a book by ISBN.
	// Returns domain.ErrNotFound if no such book exists.
	Get(ctx context.Context, isbn string) (*domain.Book, error)

	// List returns all books ordered by ISBN.
	List(ctx context.Context) ([]domain.Book, error)

	// Delete removes a book by ISBN.
	// Returns domain.ErrNotFound if no such book exists.
	Delete(ctx context.Context, isbn string) error
}
