package identity

import (
	"regexp"
	"strings"
)

// emailChar matches anything but @ and whitespace, where whitespace also
// covers Unicode separators and the C0 information separators.
const emailChar = `[^@\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// emailPattern is a permissive syntax check: local@domain.tld with no
// whitespace and exactly one @.
var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

// ValidEmail reports whether raw looks like an email address once
// surrounding whitespace is trimmed. No DNS or MX lookups are made.
func ValidEmail(raw string) bool {
	return emailPattern.MatchString(strings.TrimSpace(raw))
}
