package scan

import "strings"

// Clean collapses every run of whitespace to a single space and trims
// the result.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ResolveLineEnd prepares a cleaned line for joining with the next one.
// A trailing hyphen is dropped so the split word rejoins; any other line
// gets a separating space.
func ResolveLineEnd(line string) string {
	if trimmed, ok := strings.CutSuffix(line, "-"); ok {
		return trimmed
	}
	return line + " "
}

// normaliseLine applies Clean then ResolveLineEnd.
func normaliseLine(text string) string {
	return ResolveLineEnd(Clean(text))
}
