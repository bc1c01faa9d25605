package question

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var runSeparators = regexp.MustCompile(`[\s\p{Zs}._-]+`)

// Humanize turns a machine identifier into lowercase space-separated words.
// Runs of whitespace, periods, hyphens and underscores become one space and
// slashes are padded. Humanize(Humanize(s)) == Humanize(s).
func Humanize(s string) string {
	s = strings.ReplaceAll(s, "/", " / ")
	s = runSeparators.ReplaceAllString(s, " ")
	// A Caser keeps state between calls, so each call gets its own.
	return strings.TrimSpace(cases.Lower(language.Und).String(s))
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
