package domain

// PageSpan is the joined text of a contiguous run of lines on one page.
// It is built per run, matched against and then discarded.
type PageSpan struct {
	// Page is the page every line of the span sits on.
	Page int

	// StartLine is the line number of the first joined line.
	StartLine int

	// LineOffsets holds the byte offset in Text at which each joined line
	// begins. The first element is always 0.
	LineOffsets []int

	// Text is the concatenation of the normalised lines.
	Text string
}
