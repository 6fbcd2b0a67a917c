package mail

import (
	"regexp"
	"strings"
	"unicode"
)

// fromAddr captures an optional (possibly quoted) display name followed by an
// address that may or may not be wrapped in angle brackets. It accepts both
// `"Jane Doe" <jane@example.com>` and a bare `jane@example.com`.
var fromAddr = regexp.MustCompile(`^(?:"?([^"]*)"?\s)?<?(.+@[^>]+)>?$`)

// ParseFrom splits a raw From header into display name and address.
// When the header does not look like an address at all, the whole string is
// used as the display name and the address is left empty.
func ParseFrom(header string) (name, email string) {
	m := fromAddr.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return header, ""
	}
	name, email = m[1], m[2]
	if name == "" {
		name = email
	}
	return name, email
}

// Initials derives up to two uppercase avatar initials from a display name,
// one from each of the first two whitespace-separated tokens.
func Initials(name string) string {
	var b strings.Builder
	for i, tok := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r := []rune(tok)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
