package identity

import (
	"strconv"
	"strings"

	"github.com/zarlcorp/zsignup/internal/random"
)

// display name policy: starts with a-z, then a-z 0-9 _, 3 to 16 long
const (
	minDisplayLen = 3
	maxDisplayLen = 16

	displaySuffixMin = 1000
	displaySuffixMax = 9999
)

// DisplayName derives a handle from the name pair plus a four-digit suffix.
func (g *Generator) DisplayName(first, last string) string {
	suffix, err := random.Int(g.src, displaySuffixMin, displaySuffixMax)
	if err != nil {
		panic("identity: " + err.Error())
	}
	return SanitizeDisplayName(first+last+strconv.Itoa(suffix), g.src)
}

// SanitizeDisplayName forces base into the display name policy. The result
// always matches ^[a-z][a-z0-9_]{2,15}$ whatever base contains; src only
// supplies padding digits for results shorter than three characters.
func SanitizeDisplayName(base string, src random.Source) string {
	base = strings.ToLower(base)

	if base == "" || !isLowerASCII(rune(base[0])) {
		base = "a" + base
	}

	var b strings.Builder
	for _, r := range base {
		if b.Len() == maxDisplayLen {
			break
		}
		if isLowerASCII(r) || isDigitASCII(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	for b.Len() < minDisplayLen {
		b.WriteString(strconv.Itoa(random.Digit(src)))
	}
	return b.String()
}

func isLowerASCII(r rune) bool { return r >= 'a' && r <= 'z' }

func isDigitASCII(r rune) bool { return r >= '0' && r <= '9' }
