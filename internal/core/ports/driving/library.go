package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

// ImportResult summarises a library import.
type ImportResult struct {
	// BatchID identifies the import; every stored book carries it.
	BatchID string

	// Imported is the number of books saved.
	Imported int

	// Skipped is the number of books rejected for lacking an ISBN.
	Skipped int
}

// LibraryService manages the stored book library.
type LibraryService interface {
	// Import reads a JSON array of books and stores every book with an ISBN.
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)

	// Add stores a single book, replacing any book with the same ISBN.
	Add(ctx context.Context, book domain.Book) error

	// Get retrieves a book by ISBN.
	Get(ctx context.Context, isbn string) (*domain.Book, error)

	// List returns every stored book ordered by ISBN.
	List(ctx context.Context) ([]domain.Book, error)

	// Remove deletes a book by ISBN.
	Remove(ctx context.Context, isbn string) error
}
