// Package identity generates synthetic signup details.
// All generation draws from a random.Source; production code uses
// crypto-backed randomness, never math/rand.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreatedLayout is the second-precision timestamp layout used in records.
const CreatedLayout = "2006-01-02T15:04:05"

// DOBLayout is the date-of-birth layout, e.g. 07/Mar/1988.
const DOBLayout = "02/Jan/2006"

// Separator closes every record block in the account log.
var Separator = strings.Repeat("-", 31)

// record block keys, in output order
const (
	keyEmail       = "Email"
	keyFirstName   = "First name"
	keyLastName    = "Last name"
	keyPassword    = "Create password"
	keyDisplayName = "Add a display name"
	keyDate        = "Date"
	keyCountry     = "Country"
	keyCreated     = "Created"
)

// Record holds one generated set of signup details. It is a value type:
// every method has a value receiver and none of them modify it.
type Record struct {
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	DateOfBirth string    `json:"date_of_birth"`
	Password    string    `json:"password"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
}

// Field is a labeled value the user copies into the signup form.
type Field struct {
	Label string
	Value string
}

// Format renders the record as written to the account log: eight labeled
// lines, then the separator line, with no trailing newline.
func (r Record) Format() string {
	lines := []string{
		keyEmail + ": " + r.Email,
		keyFirstName + ": " + r.FirstName,
		keyLastName + ": " + r.LastName,
		keyPassword + ": " + r.Password,
		keyDisplayName + ": " + r.DisplayName,
		keyDate + ": " + r.DateOfBirth,
		keyCountry + ": " + r.Country,
		keyCreated + ": " + r.CreatedAt.Format(CreatedLayout),
		Separator,
	}
	return strings.Join(lines, "\n")
}

// FormFields returns the fields in the order the signup form asks for them.
func (r Record) FormFields() []Field {
	return []Field{
		{"Email address", r.Email},
		{"First name", r.FirstName},
		{"Last name", r.LastName},
		{"Create password", r.Password},
		{"Add a display name", r.DisplayName},
	}
}

// Valid reports whether every field is populated.
func (r Record) Valid() bool {
	return r.Email != "" &&
		r.FirstName != "" &&
		r.LastName != "" &&
		r.DisplayName != "" &&
		r.DateOfBirth != "" &&
		r.Password != "" &&
		r.Country != "" &&
		!r.CreatedAt.IsZero()
}

// ErrMalformedRecord is returned when a text block is not a formatted record.
var ErrMalformedRecord = errors.New("malformed record")

// ParseRecord is the inverse of Format. The trailing separator line is
// optional; CreatedAt is read in the local time zone.
func ParseRecord(block string) (Record, error) {
	block = strings.ReplaceAll(block, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == Separator {
		lines = lines[:n-1]
	}

	want := []string{keyEmail, keyFirstName, keyLastName, keyPassword, keyDisplayName, keyDate, keyCountry, keyCreated}
	if len(lines) != len(want) {
		return Record{}, fmt.Errorf("%w: %d lines, want %d", ErrMalformedRecord, len(lines), len(want))
	}

	vals := make([]string, len(want))
	for i, key := range want {
		v, ok := strings.CutPrefix(lines[i], key+": ")
		if !ok {
			return Record{}, fmt.Errorf("%w: line %d: want key %q", ErrMalformedRecord, i+1, key)
		}
		vals[i] = v
	}

	created, err := time.ParseInLocation(CreatedLayout, vals[7], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("%w: created: %w", ErrMalformedRecord, err)
	}

	return Record{
		Email:       vals[0],
		FirstName:   vals[1],
		LastName:    vals[2],
		Password:    vals[3],
		DisplayName: vals[4],
		DateOfBirth: vals[5],
		Country:     vals[6],
		CreatedAt:   created,
	}, nil
}
