package mcp

import (
	"github.com/custodia-labs/pagescan/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides phrase search.
	Search driving.SearchService

	// Library exposes stored books. Optional; without it the book
	// resources are empty and library searches find nothing.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
