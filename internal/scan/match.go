package scan

import "regexp"

// Matcher finds whole-word occurrences of a literal phrase.
//
// A match must be preceded by a non-word character or the start of the text
// and followed by a non-word character or the end of the text. Matching is
// case-sensitive. The scan is non-overlapping: the boundary character after
// one match is consumed, so it cannot also open the next match.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles a matcher for term. Regular expression
// metacharacters in term are matched literally.
func NewMatcher(term string) *Matcher {
	return &Matcher{
		re: regexp.MustCompile(`(?:^|\W)(` + regexp.QuoteMeta(term) + `)(?:$|\W)`),
	}
}

// FindAll returns the offset of the first character of every match in text,
// left to right.
func (m *Matcher) FindAll(text string) []int {
	found := m.re.FindAllStringSubmatchIndex(text, -1)
	offsets := make([]int, 0, len(found))
	for _, loc := range found {
		offsets = append(offsets, loc[2])
	}
	return offsets
}
