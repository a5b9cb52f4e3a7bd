package identity

import (
	"fmt"
	"time"

	"github.com/zarlcorp/zsignup/internal/random"
)

// maxDayAttempts bounds the day rejection loop. At least 28 of 31
// candidates are always valid, so exhausting it is not expected.
const maxDayAttempts = 64

// DateOfBirth returns a real calendar date in [minYear, maxYear] formatted
// as DD/Mon/YYYY.
func (g *Generator) DateOfBirth(minYear, maxYear int) (string, error) {
	year, err := random.Int(g.src, minYear, maxYear)
	if err != nil {
		return "", fmt.Errorf("date of birth: years %d-%d: %w", minYear, maxYear, err)
	}
	month := time.Month(1 + g.src.Intn(12))

	// fall back to the last day of the month, which always exists
	day := daysIn(year, month)
	for range maxDayAttempts {
		d := 1 + g.src.Intn(31)
		if d <= daysIn(year, month) {
			day = d
			break
		}
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DOBLayout), nil
}

// daysIn returns the number of days in month of year.
func daysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
