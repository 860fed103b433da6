// Package normalize holds the text normalisation rules shared by the settings
// validator and the cleaner.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Whitespace collapses every run of Unicode whitespace into a single space.
// Leading and trailing runs are collapsed too, not removed.
func Whitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Upper upper-cases s with full Unicode case mapping (ß → SS).
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Title collapses whitespace, trims and title-cases s: every word starts with
// an upper-case letter and continues in lower case.
func Title(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(Whitespace(s)))
}

// SettingName normalizes a setting name for table lookups.
func SettingName(s string) string {
	return Upper(Whitespace(s))
}
