package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFieldLength is the longest value, in characters, kept for any form field.
const MaxFieldLength = 2000

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CleanText normalizes an untrusted field value. Anything that is not a string
// becomes "", surrounding whitespace is trimmed, internal whitespace runs collapse
// to a single space and the result is cut to MaxFieldLength characters.
func CleanText(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	s = strings.Join(strings.FieldsFunc(s, IsSpace), " ")
	if utf8.RuneCountInString(s) <= MaxFieldLength {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:MaxFieldLength]), IsSpace)
}

// IsSpace matches the whitespace set browsers trim from form values: the
// Unicode spaces plus the byte order mark, but not NEL (U+0085).
func IsSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// IsValidEmail reports whether s looks like an address: something@domain.tld with
// no whitespace and a single @ on each side of the split.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
