// Package mcp provides an MCP (Model Context Protocol) server adapter for pagescan.
// It lets AI assistants search the scanned book library and read stored books.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
