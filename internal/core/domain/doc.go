// Package domain defines the core business entities for pagescan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: A scanned book and its content lines
//   - ContentLine: One OCR line identified by page and line number
//   - PageSpan: Joined text of adjacent lines on one page
//   - MatchResult / SearchResponse: Search output
//   - Settings: User configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
