// Package techword counts technical-term occurrences in text against a
// compiled word list.
package techword

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// alnumClass is the character class that makes a token space-delimited
const alnumClass = `[a-zA-Z0-9À-ÿ]`

// Each edge of a space-delimited match must sit on a word boundary or next to
// a character outside alnumClass. A token such as ".NET" or "C++" whose edge
// is not a word character therefore still matches in "ASP.NET" or "C++11".
const (
	leftEdge  = `(?:\b|(?<!` + alnumClass + `))`
	rightEdge = `(?:\b|(?!` + alnumClass + `))`
)

// Matcher is an immutable compiled word list, safe for concurrent use
type Matcher struct {
	re *regexp2.Regexp // nil when the word list is empty
}

// Compile builds a Matcher from words. Surrounding whitespace is trimmed and
// blank entries are ignored. Word order is kept in the alternation.
func Compile(words []string) (*Matcher, error) {
	spaceDelimited, nonSpaceDelimited := Partition(words)

	var groups []string
	if len(spaceDelimited) > 0 {
		groups = append(groups, leftEdge+"(?:"+union(spaceDelimited)+")"+rightEdge)
	}
	if len(nonSpaceDelimited) > 0 {
		groups = append(groups, "(?:"+union(nonSpaceDelimited)+")")
	}
	if len(groups) == 0 {
		return &Matcher{}, nil
	}

	re, err := regexp2.Compile(strings.Join(groups, "|"), regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("compiling techword pattern: %w", err)
	}
	return &Matcher{re: re}, nil
}

// Partition splits words into tokens containing at least one alphanumeric
// (ASCII or Latin-1 letter) and tokens containing none.
func Partition(words []string) (spaceDelimited, nonSpaceDelimited []string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if hasAlnum(w) {
			spaceDelimited = append(spaceDelimited, w)
		} else {
			nonSpaceDelimited = append(nonSpaceDelimited, w)
		}
	}
	return spaceDelimited, nonSpaceDelimited
}

// Count returns the number of non-overlapping matches in text, scanning left
// to right.
func (m *Matcher) Count(text string) int {
	if m == nil || m.re == nil || text == "" {
		return 0
	}

	count := 0
	match, err := m.re.FindStringMatch(text)
	for err == nil && match != nil {
		count++
		match, err = m.re.FindNextMatch(match)
	}
	return count
}

func union(words []string) string {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp2.Escape(w)
	}
	return strings.Join(escaped, "|")
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if isAlnum(r) {
			return true
		}
	}
	return false
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		(r >= 0xC0 && r <= 0xFF)
}
