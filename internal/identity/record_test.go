package identity

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testRecord() Record {
	return Record{
		Email:       "jane@temp-mail.org",
		FirstName:   "Grace",
		LastName:    "Moore",
		DisplayName: "gracemoore4821",
		DateOfBirth: "07/Mar/1988",
		Password:    "aB3!xY7?qW2z",
		Country:     "Ireland",
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local),
	}
}

// sameRecord compares records with time.Time.Equal for the timestamp.
func sameRecord(a, b Record) bool {
	ta, tb := a.CreatedAt, b.CreatedAt
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	return a == b && ta.Equal(tb)
}

func TestRecordFormat(t *testing.T) {
	want := "Email: jane@temp-mail.org\n" +
		"First name: Grace\n" +
		"Last name: Moore\n" +
		"Create password: aB3!xY7?qW2z\n" +
		"Add a display name: gracemoore4821\n" +
		"Date: 07/Mar/1988\n" +
		"Country: Ireland\n" +
		"Created: 2025-01-02T03:04:05\n" +
		"-------------------------------"

	got := testRecord().Format()
	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestRecordFormatIdempotent(t *testing.T) {
	g := newTestGenerator(t)
	rec, err := g.Account("user@test.com", "Canada")
	if err != nil {
		t.Fatalf("account: %v", err)
	}

	a := rec.Format()
	b := rec.Format()
	if a != b {
		t.Errorf("formatting twice differs:\n%s\n---\n%s", a, b)
	}
}

func TestRecordFormatShape(t *testing.T) {
	lines := strings.Split(testRecord().Format(), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if sep := lines[8]; sep != strings.Repeat("-", 31) {
		t.Errorf("separator = %q", sep)
	}
}

func TestRecordFormFields(t *testing.T) {
	rec := testRecord()
	fields := rec.FormFields()

	want := []Field{
		{"Email address", rec.Email},
		{"First name", rec.FirstName},
		{"Last name", rec.LastName},
		{"Create password", rec.Password},
		{"Add a display name", rec.DisplayName},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, fields[i], want[i])
		}
	}
}

func TestRecordValid(t *testing.T) {
	if !testRecord().Valid() {
		t.Error("complete record should be valid")
	}

	rec := testRecord()
	rec.DisplayName = ""
	if rec.Valid() {
		t.Error("record with empty display name should be invalid")
	}

	rec = testRecord()
	rec.CreatedAt = time.Time{}
	if rec.Valid() {
		t.Error("record with zero timestamp should be invalid")
	}
}

func TestParseRecord(t *testing.T) {
	want := testRecord()

	tests := []struct {
		name  string
		block string
	}{
		{"formatted", want.Format()},
		{"without separator", strings.TrimSuffix(want.Format(), "\n"+Separator)},
		{"trailing newline", want.Format() + "\n"},
		{"crlf", strings.ReplaceAll(want.Format(), "\n", "\r\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.block)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !sameRecord(got, want) {
				t.Errorf("ParseRecord = %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseRecordMalformed(t *testing.T) {
	good := testRecord().Format()

	tests := []struct {
		name  string
		block string
	}{
		{"empty", ""},
		{"missing line", strings.Replace(good, "Country: Ireland\n", "", 1)},
		{"wrong key", strings.Replace(good, "First name:", "Given name:", 1)},
		{"bad timestamp", strings.Replace(good, "2025-01-02T03:04:05", "yesterday", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.block)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("err = %v, want ErrMalformedRecord", err)
			}
		})
	}
}
