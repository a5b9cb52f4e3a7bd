// Package random draws uniform choices from a cryptographically strong
// source. Nothing in here is seedable; tests substitute their own Source.
package random

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/zarlcorp/core/pkg/zcrypto"
)

// ErrInvalidArgument is returned when a choice is requested from an empty
// sequence or an empty range.
var ErrInvalidArgument = errors.New("random: invalid argument")

// Source yields uniform integers in [0, n). Callers guarantee n > 0.
type Source interface {
	Intn(n int) int
}

// Crypto is a Source backed by OS entropy. The zero value is ready to use
// and safe for concurrent use.
type Crypto struct{}

// Intn returns a uniform int in [0, n) using rejection sampling so that no
// residue class is favoured.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}

	bound := uint64(n)
	// largest multiple of bound that fits in a uint64
	limit := math.MaxUint64 - math.MaxUint64%bound

	for {
		b, err := zcrypto.RandBytes(8)
		if err != nil {
			// entropy failure is unrecoverable
			panic("random: " + err.Error())
		}
		v := binary.LittleEndian.Uint64(b)
		if v < limit {
			return int(v % bound)
		}
	}
}

// Choose returns one element of s picked uniformly.
func Choose[T any](src Source, s []T) (T, error) {
	var zero T
	if len(s) == 0 {
		return zero, ErrInvalidArgument
	}
	return s[src.Intn(len(s))], nil
}

// Int returns a uniform int in [lo, hi], both inclusive.
func Int(src Source, lo, hi int) (int, error) {
	if lo > hi {
		return 0, ErrInvalidArgument
	}
	return lo + src.Intn(hi-lo+1), nil
}

// Digit returns a uniform decimal digit.
func Digit(src Source) int {
	return src.Intn(10)
}

// Shuffle permutes s in place with Fisher-Yates.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
