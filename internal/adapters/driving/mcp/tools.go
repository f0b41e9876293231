package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

// SearchBooksInput is the input schema for the search_books tool.
type SearchBooksInput struct {
	Term  string   `json:"term" jsonschema:"the phrase to find; surrounding and repeated whitespace is ignored"`
	ISBNs []string `json:"isbns,omitempty" jsonschema:"restrict the search to these ISBNs"`
}

// SearchTextInput is the input schema for the search_text tool.
type SearchTextInput struct {
	Term  string        `json:"term" jsonschema:"the phrase to find; surrounding and repeated whitespace is ignored"`
	Books []domain.Book `json:"books" jsonschema:"scanned books to search, each with Title, ISBN and Content lines"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_books",
		Description: "Find a phrase in the stored book library and report the ISBN, page and line of each match",
	}, s.handleSearchBooks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_text",
		Description: "Find a phrase in the supplied scanned books and report the ISBN, page and line of each match",
	}, s.handleSearchText)
}

// handleSearchBooks handles the search_books tool invocation.
func (s *Server) handleSearchBooks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchBooksInput,
) (*mcp.CallToolResult, domain.SearchResponse, error) {
	opts := domain.SearchOptions{ISBNs: input.ISBNs}
	resp, err := s.ports.Search.SearchLibrary(ctx, input.Term, opts)
	if err != nil {
		return nil, domain.SearchResponse{}, err
	}
	return nil, *resp, nil
}

// handleSearchText handles the search_text tool invocation.
func (s *Server) handleSearchText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchTextInput,
) (*mcp.CallToolResult, domain.SearchResponse, error) {
	resp, err := s.ports.Search.Search(ctx, input.Term, input.Books, domain.SearchOptions{})
	if err != nil {
		return nil, domain.SearchResponse{}, err
	}
	return nil, *resp, nil
}
