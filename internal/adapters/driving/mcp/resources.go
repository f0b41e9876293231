package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for pagescan resources.
	uriScheme = "pagescan://"
)

// bookInfo is the summary listed by the books resource.
type bookInfo struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
	Lines int    `json:"lines"`
	URI   string `json:"uri"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "books",
		Name:        "books",
		Description: "List of all books in the library",
		MIMEType:    "application/json",
	}, s.handleBooksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "books/{isbn}",
		Name:        "book",
		Description: "A stored book with its scanned content lines",
		MIMEType:    "application/json",
	}, s.handleBookResource)
}

// handleBooksResource returns a summary of every stored book.
func (s *Server) handleBooksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	books, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	infos := make([]bookInfo, len(books))
	for i := range books {
		infos[i] = bookInfo{
			ISBN:  books[i].ISBN,
			Title: books[i].Title,
			Lines: len(books[i].Content),
			URI:   uriScheme + "books/" + books[i].ISBN,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling books: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleBookResource returns one stored book in the import format.
func (s *Server) handleBookResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// pagescan://books/{isbn}
	isbn := extractISBN(req.Params.URI)
	if isbn == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	book, err := s.ports.Library.Get(ctx, isbn)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting book: %w", err)
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling book: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractISBN extracts the ISBN from a URI like pagescan://books/{isbn}.
func extractISBN(uri string) string {
	const prefix = uriScheme + "books/"

	isbn, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(isbn, "/") {
		return ""
	}
	return isbn
}
