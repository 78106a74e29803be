// Package sanitize masks blocklisted substrings in submitted text
package sanitize

import (
	"regexp"
	"strings"
)

// Mask replaces every blocklisted occurrence
const Mask = "***"

// Sanitizer holds one compiled case-insensitive pattern per blocklisted term.
// Terms match as plain substrings with no word boundaries, so "hate" also
// masks the middle of "whatever".
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// New compiles words into a Sanitizer, skipping blank terms
func New(words []string) *Sanitizer {
	s := &Sanitizer{}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		s.patterns = append(s.patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(w)))
	}
	return s
}

// Sanitize returns text with every blocklisted term replaced by Mask.
// Terms are applied in blocklist order.
func (s *Sanitizer) Sanitize(text string) string {
	for _, re := range s.patterns {
		text = re.ReplaceAllLiteralString(text, Mask)
	}
	return text
}

// Contains reports whether text holds any blocklisted term
func (s *Sanitizer) Contains(text string) bool {
	for _, re := range s.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Len returns the number of active terms
func (s *Sanitizer) Len() int { return len(s.patterns) }
