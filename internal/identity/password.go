package identity

import "github.com/zarlcorp/zsignup/internal/random"

// password character classes
const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	symbolChars  = "!@#$%^&*()-_=+[]{}:;,./?"
	allPassChars = lowerChars + upperChars + digitChars + symbolChars

	// MinPasswordLen is the floor applied to any requested length.
	MinPasswordLen = 10
)

// Password generates a password of max(length, MinPasswordLen) characters
// with at least one lowercase letter, uppercase letter, digit and symbol.
// Shorter requests are clamped, not rejected.
func (g *Generator) Password(length int) string {
	length = max(length, MinPasswordLen)

	buf := make([]byte, length)

	// guarantee one from each class
	buf[0] = g.pickByte(lowerChars)
	buf[1] = g.pickByte(upperChars)
	buf[2] = g.pickByte(digitChars)
	buf[3] = g.pickByte(symbolChars)

	for i := 4; i < length; i++ {
		buf[i] = g.pickByte(allPassChars)
	}

	random.Shuffle(g.src, buf)
	return string(buf)
}
