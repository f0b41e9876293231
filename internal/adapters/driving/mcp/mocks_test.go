package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/pagescan/internal/core/domain"
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	gotTerm  string
	gotBooks []domain.Book
	gotOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	term string,
	books []domain.Book,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.gotTerm = term
	m.gotBooks = books
	m.gotOpts = opts
	return m.respond(term)
}

func (m *mockSearchService) SearchLibrary(
	_ context.Context,
	term string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.gotTerm = term
	m.gotOpts = opts
	return m.respond(term)
}

func (m *mockSearchService) respond(term string) (*domain.SearchResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return domain.NewSearchResponse(term), nil
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	books []domain.Book
	book  *domain.Book
	err   error
}

func (m *mockLibraryService) Import(_ context.Context, _ io.Reader) (*driving.ImportResult, error) {
	return nil, m.err
}

func (m *mockLibraryService) Add(_ context.Context, _ domain.Book) error {
	return m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.Book, error) {
	return m.book, m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Book, error) {
	return m.books, m.err
}

func (m *mockLibraryService) Remove(_ context.Context, _ string) error {
	return m.err
}
