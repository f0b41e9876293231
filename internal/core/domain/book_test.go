package domain

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareContent(t *testing.T) {
	tests := []struct {
		name     string
		a, b     ContentLine
		expected int
	}{
		{"earlier page first", ContentLine{Page: 1, Line: 9}, ContentLine{Page: 2, Line: 1}, -1},
		{"later page last", ContentLine{Page: 3, Line: 1}, ContentLine{Page: 2, Line: 9}, 1},
		{"same page earlier line", ContentLine{Page: 2, Line: 1}, ContentLine{Page: 2, Line: 2}, -1},
		{"same page later line", ContentLine{Page: 2, Line: 5}, ContentLine{Page: 2, Line: 2}, 1},
		{"identical position", ContentLine{Page: 2, Line: 2}, ContentLine{Page: 2, Line: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareContent(tt.a, tt.b))
		})
	}
}

func TestCompareContent_SortsScrambledBook(t *testing.T) {
	lines := []ContentLine{
		{Page: 31, Line: 8, Text: "now simply went on by her own momentum.  The dark-"},
		{Page: 31, Line: 10, Text: "eyes were, I asked myself how he had managed to see, and"},
		{Page: 31, Line: 9, Text: "ness was then profound; and however good the Canadian's"},
	}

	slices.SortStableFunc(lines, CompareContent)

	assert.Equal(t, 8, lines[0].Line)
	assert.Equal(t, 9, lines[1].Line)
	assert.Equal(t, 10, lines[2].Line)
}

func TestContentLine_Follows(t *testing.T) {
	prev := ContentLine{Page: 4, Line: 7}

	assert.True(t, ContentLine{Page: 4, Line: 8}.Follows(prev))
	assert.False(t, ContentLine{Page: 4, Line: 9}.Follows(prev), "gap in line numbers")
	assert.False(t, ContentLine{Page: 5, Line: 8}.Follows(prev), "different page")
	assert.False(t, ContentLine{Page: 4, Line: 7}.Follows(prev), "duplicate line")
}

func TestBook_Searchable(t *testing.T) {
	line := []ContentLine{{Page: 1, Line: 1, Text: "x"}}

	assert.True(t, (&Book{ISBN: "1", Content: line}).Searchable())
	assert.False(t, (&Book{ISBN: "", Content: line}).Searchable())
	assert.False(t, (&Book{ISBN: "1"}).Searchable())
	assert.False(t, (&Book{ISBN: "1", Content: []ContentLine{}}).Searchable())
}

func TestNewSearchResponse(t *testing.T) {
	resp := NewSearchResponse(" raw  term ")

	assert.Equal(t, " raw  term ", resp.SearchTerm)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestDecodeBooks(t *testing.T) {
	input := `[{"Title":"T","ISBN":"1","Content":[{"Page":2,"Line":3,"Text":"hi"}]},{"Content":[]}]`

	books, err := DecodeBooks(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, Book{Title: "T", ISBN: "1", Content: []ContentLine{{Page: 2, Line: 3, Text: "hi"}}}, books[0])
	assert.Empty(t, books[1].ISBN)
}

func TestDecodeBooks_Invalid(t *testing.T) {
	_, err := DecodeBooks(strings.NewReader(`{"not":"an array"}`))

	assert.ErrorIs(t, err, ErrInvalidInput)
}
