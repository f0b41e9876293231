package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
)

// Book is a scanned book as produced by the OCR pipeline.
type Book struct {
	// Title is informational only.
	Title string `json:"Title,omitempty"`

	// ISBN identifies the book. Books without one cannot be attributed
	// and are excluded from search. An empty string counts as missing.
	ISBN string `json:"ISBN,omitempty"`

	// Content holds the scanned lines in any order.
	Content []ContentLine `json:"Content"`

	// BatchID records the library import that stored this book.
	// Empty for books that never went through a library import.
	BatchID string `json:"-"`
}

// Searchable reports whether the book can take part in a search.
func (b *Book) Searchable() bool {
	return b.ISBN != "" && len(b.Content) > 0
}

// ContentLine is one scanned line of text.
// Within a book, (Page, Line) pairs are unique.
type ContentLine struct {
	Page int    `json:"Page"`
	Line int    `json:"Line"`
	Text string `json:"Text"`
}

// CompareContent orders content lines by ascending page, then ascending line.
func CompareContent(a, b ContentLine) int {
	if c := cmp.Compare(a.Page, b.Page); c != 0 {
		return c
	}
	return cmp.Compare(a.Line, b.Line)
}

// Follows reports whether l is the line immediately after prev on the same page.
func (l ContentLine) Follows(prev ContentLine) bool {
	return l.Page == prev.Page && l.Line == prev.Line+1
}

// DecodeBooks reads a JSON array of books.
func DecodeBooks(r io.Reader) ([]Book, error) {
	var books []Book
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("%w: decode books: %w", ErrInvalidInput, err)
	}
	return books, nil
}
