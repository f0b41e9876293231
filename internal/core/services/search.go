package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driven"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
	"github.com/custodia-labs/pagescan/internal/logger"
	"github.com/custodia-labs/pagescan/internal/scan"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService finds phrases in scanned books and reports the page and
// line where each match begins. It holds no state between searches.
type SearchService struct {
	bookStore driven.BookStore
}

// NewSearchService creates a new search service.
// The bookStore parameter is optional (can be nil); without it only
// Search is available.
func NewSearchService(bookStore driven.BookStore) *SearchService {
	return &SearchService{
		bookStore: bookStore,
	}
}

// Search finds every whole-phrase occurrence of term in books.
//
// The term is whitespace-cleaned before matching, but the response carries
// it unchanged. Books lacking an ISBN or content are skipped. Book content
// is sorted on a copy, so books are never modified.
func (s *SearchService) Search(
	ctx context.Context, term string, books []domain.Book, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")

	cleaned := scan.Clean(term)
	logger.Debug("Term: %q, cleaned: %q", term, cleaned)
	logger.Debug("Books: %d, workers: %d", len(books), opts.Workers)

	matcher := scan.NewMatcher(cleaned)

	var perBook [][]domain.MatchResult
	var err error
	if opts.Workers > 1 && len(books) > 1 {
		perBook, err = s.searchConcurrent(ctx, matcher, books, opts.Workers)
	} else {
		perBook, err = s.searchSequential(ctx, matcher, books)
	}
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	resp := domain.NewSearchResponse(term)
	for _, results := range perBook {
		resp.Results = append(resp.Results, results...)
	}

	logger.Info("Final results: %d", len(resp.Results))
	return resp, nil
}

// SearchLibrary runs Search over the stored library, optionally
// restricted to opts.ISBNs.
func (s *SearchService) SearchLibrary(
	ctx context.Context, term string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	if s.bookStore == nil {
		return nil, errors.New("book store unavailable")
	}

	books, err := s.loadBooks(ctx, opts.ISBNs)
	if err != nil {
		return nil, err
	}

	return s.Search(ctx, term, books, opts)
}

func (s *SearchService) loadBooks(ctx context.Context, isbns []string) ([]domain.Book, error) {
	if len(isbns) == 0 {
		books, err := s.bookStore.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		return books, nil
	}

	books := make([]domain.Book, 0, len(isbns))
	for _, isbn := range isbns {
		book, err := s.bookStore.Get(ctx, isbn)
		if err != nil {
			return nil, fmt.Errorf("get book %s: %w", isbn, err)
		}
		books = append(books, *book)
	}
	return books, nil
}

func (s *SearchService) searchSequential(
	ctx context.Context, matcher *scan.Matcher, books []domain.Book,
) ([][]domain.MatchResult, error) {
	perBook := make([][]domain.MatchResult, len(books))
	for i := range books {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := searchBook(matcher, &books[i])
		if err != nil {
			return nil, err
		}
		perBook[i] = results
	}
	return perBook, nil
}

// searchConcurrent searches books on a worker pool. Results are collected
// per book index so the output order matches the sequential path.
func (s *SearchService) searchConcurrent(
	ctx context.Context, matcher *scan.Matcher, books []domain.Book, workers int,
) ([][]domain.MatchResult, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	perBook := make([][]domain.MatchResult, len(books))
	errs := make([]error, len(books))

	var wg sync.WaitGroup
	for i := range books {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			perBook[i], errs[i] = searchBook(matcher, &books[i])
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit book %d: %w", i, submitErr)
			break
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return perBook, nil
}

// searchBook joins the book's lines into page spans and resolves every
// match in them to its starting line.
func searchBook(matcher *scan.Matcher, book *domain.Book) ([]domain.MatchResult, error) {
	if !book.Searchable() {
		logger.Debug("Skipping book %q (ISBN %q): no ISBN or no content", book.Title, book.ISBN)
		return nil, nil
	}

	lines := slices.Clone(book.Content)
	slices.SortStableFunc(lines, domain.CompareContent)

	spans := scan.JoinAll(lines)
	var results []domain.MatchResult
	for _, span := range spans {
		for _, offset := range matcher.FindAll(span.Text) {
			pos := scan.LeftNearest(offset, span.LineOffsets)
			if pos < 0 {
				return nil, fmt.Errorf("%w: book %s page %d offset %d",
					domain.ErrUnresolvableOffset, book.ISBN, span.Page, offset)
			}
			results = append(results, domain.MatchResult{
				ISBN: book.ISBN,
				Page: span.Page,
				Line: span.StartLine + pos,
			})
		}
	}

	logger.Debug("Book %s: %d spans, %d matches", book.ISBN, len(spans), len(results))
	return results, nil
}
