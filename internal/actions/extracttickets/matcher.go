package extracttickets

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"relticket.dev/relticket/internal/actions"
)

// ticketPattern matches PREFIX-NUMBER; token boundaries are checked
// separately since \b only knows ASCII word characters
var ticketPattern = regexp.MustCompile(`[A-Z]+-[0-9]+`)

// Matcher finds ticket identifiers in text
type Matcher struct {
	prefixes map[string]struct{}
}

// NewMatcher creates a matcher. When prefixes is non-empty only identifiers
// with one of those prefixes are reported.
func NewMatcher(prefixes []string) *Matcher {
	m := &Matcher{}
	if len(prefixes) > 0 {
		m.prefixes = make(map[string]struct{}, len(prefixes))
		for _, p := range prefixes {
			m.prefixes[p] = struct{}{}
		}
	}
	return m
}

// Find returns every identifier in text in order of appearance, duplicates included
func (m *Matcher) Find(text string) []actions.TicketID {
	var ids []actions.TicketID
	for _, loc := range ticketPattern.FindAllStringIndex(text, -1) {
		if !isBoundary(text, loc[0], loc[1]) {
			continue
		}
		match := text[loc[0]:loc[1]]
		if m.prefixes != nil {
			prefix, _, _ := strings.Cut(match, "-")
			if _, ok := m.prefixes[prefix]; !ok {
				continue
			}
		}
		ids = append(ids, actions.TicketID(match))
	}
	return ids
}

// isBoundary reports whether text[start:end] is not glued to a letter,
// digit or underscore on either side
func isBoundary(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
