package accountlog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zsignup/internal/identity"
)

func testRecord(email string) identity.Record {
	return identity.Record{
		Email:       email,
		FirstName:   "Henry",
		LastName:    "Taylor",
		DisplayName: "henrytaylor7731",
		DateOfBirth: "19/Nov/1983",
		Password:    "x7K!mQ2?pL9a",
		Country:     "New Zealand",
		CreatedAt:   time.Date(2025, 6, 1, 12, 30, 0, 0, time.Local),
	}
}

func TestAppendCreatesFile(t *testing.T) {
	fsys := zfilesystem.NewOSFileSystem(t.TempDir())
	l := Open(fsys, DefaultName)

	rec := testRecord("one@temp-mail.org")
	if err := l.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := fsys.ReadFile(DefaultName)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := rec.Format() + "\n"; string(got) != want {
		t.Errorf("log =\n%s\nwant\n%s", got, want)
	}
}

func TestAppendCreatesParentDirs(t *testing.T) {
	fsys := zfilesystem.NewOSFileSystem(t.TempDir())
	l := Open(fsys, "logs/2025/"+DefaultName)

	if err := l.Append(testRecord("a@b.c")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := fsys.ReadFile("logs/2025/" + DefaultName); err != nil {
		t.Errorf("log not written under nested dir: %v", err)
	}
}

func TestAppendPreservesExistingContent(t *testing.T) {
	fsys := zfilesystem.NewOSFileSystem(t.TempDir())
	prior := "notes the user typed by hand\n"
	if err := fsys.WriteFile(DefaultName, []byte(prior), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := Open(fsys, DefaultName)
	first := testRecord("first@x.io")
	second := testRecord("second@x.io")
	if err := l.Append(first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := l.Append(second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	got, err := fsys.ReadFile(DefaultName)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := prior + first.Format() + "\n" + second.Format() + "\n"
	if string(got) != want {
		t.Errorf("log =\n%s\nwant\n%s", got, want)
	}
}

func TestAppendSeparateHandlesKeepEveryRecord(t *testing.T) {
	dir := t.TempDir()
	handles := []*Log{
		Open(zfilesystem.NewOSFileSystem(dir), DefaultName),
		Open(zfilesystem.NewOSFileSystem(dir), DefaultName),
	}

	const perHandle = 100
	var wg sync.WaitGroup
	errs := make(chan error, len(handles)*perHandle)
	for h, l := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perHandle {
				if err := l.Append(testRecord(fmt.Sprintf("h%d-%d@temp-mail.org", h, i))); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("append: %v", err)
	}

	recs, err := handles[0].Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != len(handles)*perHandle {
		t.Fatalf("got %d records, want %d", len(recs), len(handles)*perHandle)
	}

	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		seen[r.Email] = true
	}
	if len(seen) != len(recs) {
		t.Errorf("got %d distinct records out of %d", len(seen), len(recs))
	}
}

func TestRecords(t *testing.T) {
	fsys := zfilesystem.NewOSFileSystem(t.TempDir())
	l := Open(fsys, DefaultName)

	emails := []string{"a@one.io", "b@two.io", "c@three.io"}
	for _, e := range emails {
		if err := l.Append(testRecord(e)); err != nil {
			t.Fatalf("append %s: %v", e, err)
		}
	}

	recs, err := l.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != len(emails) {
		t.Fatalf("got %d records, want %d", len(recs), len(emails))
	}
	for i, e := range emails {
		if recs[i].Email != e {
			t.Errorf("record %d email = %q, want %q", i, recs[i].Email, e)
		}
		if !recs[i].CreatedAt.Equal(testRecord(e).CreatedAt) {
			t.Errorf("record %d created = %v", i, recs[i].CreatedAt)
		}
	}
}

func TestRecordsMissingLog(t *testing.T) {
	l := Open(zfilesystem.NewOSFileSystem(t.TempDir()), DefaultName)
	recs, err := l.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records from a missing log", len(recs))
	}
}

func TestParse(t *testing.T) {
	a := testRecord("a@b.c").Format()
	b := testRecord("d@e.f").Format()

	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"one", a + "\n", 1, false},
		{"two", a + "\n" + b + "\n", 2, false},
		{"blank lines between", "\n" + a + "\n\n\n" + b + "\n", 2, false},
		{"crlf", strings.ReplaceAll(a+"\n", "\n", "\r\n"), 1, false},
		{"truncated tail", a + "\n" + "Email: x@y.z\n", 0, true},
		{"garbage block", "hello\n" + strings.Repeat("-", 31) + "\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := Parse(strings.NewReader(tt.in))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("err = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(recs) != tt.want {
				t.Errorf("got %d records, want %d", len(recs), tt.want)
			}
		})
	}
}

func TestParseMalformedWrapsRecordError(t *testing.T) {
	bad := strings.Replace(testRecord("a@b.c").Format(), "Country:", "Nation:", 1) + "\n"
	_, err := Parse(strings.NewReader(bad))
	if !errors.Is(err, identity.ErrMalformedRecord) {
		t.Errorf("err = %v, want wrapped ErrMalformedRecord", err)
	}
}
