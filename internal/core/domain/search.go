package domain

// SearchOptions configures a search over books.
type SearchOptions struct {
	// ISBNs restricts a library search to the given books.
	// Empty means every stored book.
	ISBNs []string

	// Workers is the number of books searched concurrently.
	// Values below 2 search sequentially.
	Workers int
}

// MatchResult locates the start of one match.
type MatchResult struct {
	ISBN string `json:"ISBN"`
	Page int    `json:"Page"`
	Line int    `json:"Line"`
}

// SearchResponse is the outcome of a search.
type SearchResponse struct {
	// SearchTerm is the term exactly as the caller supplied it.
	SearchTerm string `json:"SearchTerm"`

	// Results are ordered by book, then page span, then position in the span.
	Results []MatchResult `json:"Results"`
}

// NewSearchResponse creates an empty response for term.
func NewSearchResponse(term string) *SearchResponse {
	return &SearchResponse{
		SearchTerm: term,
		Results:    []MatchResult{},
	}
}
