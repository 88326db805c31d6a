package consult

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials derives display initials from a free-text name: the first rune of
// each whitespace-separated token, uppercased. "Asha Rao" -> "AR", "priya"
// -> "P", "" -> "". Odd inputs degrade the same way the display name does;
// no truncation or filtering.
func Initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
