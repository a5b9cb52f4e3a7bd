// Package verify finds the confirmation code in a signup verification
// email pasted by the user.
package verify

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Kind distinguishes all-digit codes from mixed letter and digit codes.
type Kind int

const (
	Numeric Kind = iota
	Mixed
)

func (k Kind) String() string {
	if k == Mixed {
		return "mixed"
	}
	return "numeric"
}

// Candidate is a token that may be the verification code.
type Candidate struct {
	Value string
	Kind  Kind
	Score int
}

var hints = []string{
	"verification",
	"verify",
	"code",
	"confirm",
	"security code",
	"one-time",
	"otp",
	"pin",
	"activate",
	"2fa",
}

var (
	digitsRe = regexp.MustCompile(`\b(\d{4}|\d{6}|\d{8})\b`)
	mixedRe  = regexp.MustCompile(`\b[A-Za-z0-9]{6}\b`)
	linkRe   = regexp.MustCompile(`https?://\S+`)
	addrRe   = regexp.MustCompile(`\S+@\S+\.\S+`)
	yearRe   = regexp.MustCompile(`^(19|20)\d{2}$`)
)

// hintRadius is how far around a token a hint word still counts.
const hintRadius = 60

// Find returns every plausible code in text, most likely first. Tokens
// equal to one of exclude (the generated password or display name, say)
// are never returned.
func Find(text string, exclude ...string) []Candidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s := newScan(text)
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	var out []Candidate
	add := func(start, end int, kind Kind) {
		val := s.text[start:end]
		if skip[val] {
			return
		}
		skip[val] = true
		out = append(out, Candidate{Value: val, Kind: kind, Score: s.score(start, end)})
	}

	for _, loc := range digitsRe.FindAllStringIndex(s.text, -1) {
		if !s.noise(loc[0], loc[1]) {
			add(loc[0], loc[1], Numeric)
		}
	}
	for _, loc := range mixedRe.FindAllStringIndex(s.text, -1) {
		if mixed(s.text[loc[0]:loc[1]]) {
			add(loc[0], loc[1], Mixed)
		}
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Best returns the most likely code in text.
func Best(text string, exclude ...string) (string, bool) {
	found := Find(text, exclude...)
	if len(found) == 0 {
		return "", false
	}
	return found[0].Value, true
}

// scan holds the message with links and addresses blanked out, plus its
// lowercase form for hint matching. Blanking keeps byte offsets aligned.
type scan struct {
	text  string
	lower string
}

func newScan(text string) scan {
	blank := func(m string) string { return strings.Repeat(" ", len(m)) }
	text = linkRe.ReplaceAllStringFunc(text, blank)
	text = addrRe.ReplaceAllStringFunc(text, blank)
	return scan{text: text, lower: strings.ToLower(text)}
}

// noise reports whether the digits at [start, end) are part of a price,
// a year, a clock time or a longer number. Only four digit tokens can be
// clock times; a code right after "Code:" is kept.
func (s scan) noise(start, end int) bool {
	before := func(i int) byte {
		if start-i < 0 {
			return 0
		}
		return s.text[start-i]
	}
	after := func(i int) byte {
		if end+i-1 >= len(s.text) {
			return 0
		}
		return s.text[end+i-1]
	}

	switch {
	case before(1) == '$' || before(2) == '$':
		return true
	case isDigit(before(1)) || isDigit(after(1)):
		return true
	case end-start == 4 && clock(before(1), before(2), after(1), after(2)):
		return true
	case after(1) == '.' && isDigit(after(2)):
		return true
	case before(1) == '.' && isDigit(before(2)):
		return true
	}

	if yearRe.MatchString(s.text[start:end]) {
		near := s.window(start, end, 30)
		for _, w := range []string{"copyright", "(c)", "©", "since", "founded", "year"} {
			if strings.Contains(near, w) {
				return true
			}
		}
		return !s.hinted(start, end)
	}
	return false
}

func (s scan) score(start, end int) int {
	val := s.text[start:end]
	n := 0
	for _, r := range val {
		if unicode.IsDigit(r) {
			n++
		}
	}

	score := 0
	switch {
	case n == len(val) && n == 6:
		score += 30
	case n == len(val) && n == 8:
		score += 20
	case n == len(val) && n == 4:
		score += 15
	default:
		score += 10
	}

	if s.hinted(start, end) {
		score += 50
	}

	lead := strings.TrimRight(s.window(start, start, 10), " ")
	if strings.HasSuffix(lead, ":") || strings.HasSuffix(lead, "is") || strings.HasSuffix(lead, "-") {
		score += 20
	}

	if s.standalone(start, end) {
		score += 10
	}
	return score
}

func (s scan) hinted(start, end int) bool {
	near := s.window(start, end, hintRadius)
	for _, h := range hints {
		if strings.Contains(near, h) {
			return true
		}
	}
	return false
}

func (s scan) window(start, end, radius int) string {
	hi := min(len(s.lower), end+radius)
	lo := min(max(0, start-radius), hi)
	return s.lower[lo:hi]
}

func (s scan) standalone(start, end int) bool {
	space := func(b byte) bool { return b == ' ' || b == '\n' || b == '\t' || b == '\r' }
	return (start == 0 || space(s.text[start-1])) && (end >= len(s.text) || space(s.text[end]))
}

func mixed(v string) bool {
	var letter, digit bool
	for _, r := range v {
		letter = letter || unicode.IsLetter(r)
		digit = digit || unicode.IsDigit(r)
	}
	return letter && digit
}

// clock reports whether a colon joins the token to neighbouring digits,
// as in 10:45 or 1234:56.
func clock(b1, b2, a1, a2 byte) bool {
	return (b1 == ':' && isDigit(b2)) || (a1 == ':' && isDigit(a2))
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
