// Package scan reconstructs searchable text from OCR line records and
// finds literal phrases in it.
//
// The pipeline has four stages, each usable on its own:
//
//   - Clean and ResolveLineEnd normalise a single line
//   - JoinPage merges a run of adjacent lines on one page into a PageSpan
//   - Matcher finds whole-word occurrences of a phrase in span text
//   - LeftNearest maps a match offset back to the line it starts on
//
// Offsets are byte offsets into the span text.
//
// A hyphen at the end of a line is always read as a word split across
// lines, so a genuine compound broken at a line end is joined as one word.
package scan
