package driving

import (
	"context"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

// SearchService locates phrases in scanned book text.
type SearchService interface {
	// Search finds every whole-phrase occurrence of term in books.
	// Books without an ISBN or content are skipped.
	Search(ctx context.Context, term string, books []domain.Book, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// SearchLibrary runs Search over the stored library.
	SearchLibrary(ctx context.Context, term string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}
