package identity

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/zarlcorp/zsignup/internal/random"
)

func TestDateOfBirthRange(t *testing.T) {
	tests := []struct {
		name             string
		minYear, maxYear int
	}{
		{"default range", DefaultMinYear, DefaultMaxYear},
		{"single year", 1988, 1988},
		{"leap year only", 2000, 2000},
		{"non-leap century", 1900, 1900},
		{"wide", 1900, 2020},
	}

	format := regexp.MustCompile(`^\d{2}/[A-Z][a-z]{2}/\d{4}$`)
	g := newTestGenerator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 200 {
				s, err := g.DateOfBirth(tt.minYear, tt.maxYear)
				if err != nil {
					t.Fatalf("DateOfBirth: %v", err)
				}
				if !format.MatchString(s) {
					t.Fatalf("date %q not in DD/Mon/YYYY form", s)
				}
				d, err := time.Parse(DOBLayout, s)
				if err != nil {
					t.Fatalf("date %q does not parse: %v", s, err)
				}
				// time.Parse rejects impossible days, so re-formatting must round-trip
				if d.Format(DOBLayout) != s {
					t.Fatalf("date %q normalized to %q", s, d.Format(DOBLayout))
				}
				if d.Year() < tt.minYear || d.Year() > tt.maxYear {
					t.Fatalf("date %q outside %d-%d", s, tt.minYear, tt.maxYear)
				}
			}
		})
	}
}

func TestDateOfBirthInvertedRange(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.DateOfBirth(2004, 1970)
	if !errors.Is(err, random.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestDateOfBirthRejectsImpossibleDays(t *testing.T) {
	// month draw selects February, day draws cycle 31, 30, 29 then 12
	days := []int{30, 29, 28, 11}
	i := 0
	src := funcSource(func(n int) int {
		switch n {
		case 12:
			return 1
		case 31:
			d := days[i%len(days)]
			i++
			return d
		}
		return 0
	})
	g := newTestGenerator(t, WithSource(src))

	got, err := g.DateOfBirth(2001, 2001)
	if err != nil {
		t.Fatalf("DateOfBirth: %v", err)
	}
	if got != "12/Feb/2001" {
		t.Errorf("DateOfBirth = %q, want 12/Feb/2001", got)
	}
	if i != 4 {
		t.Errorf("day drawn %d times, want 4", i)
	}
}

func TestDateOfBirthBoundedRetries(t *testing.T) {
	// a source stuck on day 31 falls back to the last day of the month
	src := funcSource(func(n int) int {
		switch n {
		case 12:
			return 1 // february
		case 31:
			return 30
		}
		return 0
	})
	g := newTestGenerator(t, WithSource(src))

	tests := []struct {
		year int
		want string
	}{
		{2000, "29/Feb/2000"},
		{2001, "28/Feb/2001"},
		{1900, "28/Feb/1900"},
	}

	for _, tt := range tests {
		got, err := g.DateOfBirth(tt.year, tt.year)
		if err != nil {
			t.Fatalf("DateOfBirth: %v", err)
		}
		if got != tt.want {
			t.Errorf("DateOfBirth(%d) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.January, 31},
		{2023, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2023, time.April, 30},
		{2023, time.December, 31},
	}

	for _, tt := range tests {
		if got := daysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("daysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
