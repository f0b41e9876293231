package scan

import (
	"strings"

	"github.com/custodia-labs/pagescan/internal/core/domain"
)

// JoinPage joins the line at start with every directly following line on the
// same page. lines must be sorted with domain.CompareContent.
//
// It returns the span and the index of the first line not joined, which is
// len(lines) when the run reached the end. A nil span means lines is empty or
// start is out of range.
func JoinPage(start int, lines []domain.ContentLine) (*domain.PageSpan, int) {
	if len(lines) == 0 || start < 0 || start >= len(lines) {
		return nil, start
	}

	first := lines[start]
	var text strings.Builder
	text.WriteString(normaliseLine(first.Text))

	span := &domain.PageSpan{
		Page:        first.Page,
		StartLine:   first.Line,
		LineOffsets: []int{0},
	}

	prev := first
	next := start + 1
	for ; next < len(lines); next++ {
		line := lines[next]
		if !line.Follows(prev) {
			break
		}
		span.LineOffsets = append(span.LineOffsets, text.Len())
		text.WriteString(normaliseLine(line.Text))
		prev = line
	}

	span.Text = text.String()
	return span, next
}

// JoinAll partitions sorted lines into maximal contiguous spans.
func JoinAll(lines []domain.ContentLine) []domain.PageSpan {
	var spans []domain.PageSpan
	for i := 0; i < len(lines); {
		span, next := JoinPage(i, lines)
		if span == nil {
			break
		}
		spans = append(spans, *span)
		i = next
	}
	return spans
}
