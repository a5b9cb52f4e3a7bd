// Package accountlog keeps the human-readable, append-only log of generated
// account records.
package accountlog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zsignup/internal/identity"
)

// DefaultName is the log file name used when none is configured.
const DefaultName = "account_details.txt"

// ErrMalformed is returned when the log holds a block that is not a record.
var ErrMalformed = errors.New("malformed account log")

// Log appends records to a single file on a filesystem. Earlier content is
// never truncated or rewritten.
type Log struct {
	fs   zfilesystem.ReadWriteFileFS
	name string
	mu   sync.Mutex
}

// Open returns a log stored at name within fsys. Nothing is touched on disk
// until the first Append.
func Open(fsys zfilesystem.ReadWriteFileFS, name string) *Log {
	return &Log{fs: fsys, name: name}
}

// Name returns the file name within the filesystem.
func (l *Log) Name() string {
	return l.name
}

// Append writes the formatted record followed by a newline at the end of
// the log, creating the file and its parent directories as needed. The
// block goes out in a single write on a file opened with O_APPEND, so
// appends from other handles or processes are never overwritten. fsys must
// honor O_APPEND; the OS filesystem does.
func (l *Log) Append(rec identity.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir := path.Dir(l.name)
	if err := l.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("append record: create %s: %w", dir, err)
	}

	f, err := l.fs.OpenFile(l.name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("append record: open %s: %w", l.name, err)
	}

	if _, err := io.WriteString(f, rec.Format()+"\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append record: write %s: %w", l.name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("append record: close %s: %w", l.name, err)
	}
	return nil
}

// Records returns every record in the log, oldest first. A missing log
// yields no records and no error.
func (l *Log) Records() ([]identity.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := l.fs.ReadFile(l.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read records: %w", err)
	}

	return Parse(bytes.NewReader(data))
}

// Parse reads formatted record blocks from r.
func Parse(r io.Reader) ([]identity.Record, error) {
	var (
		recs  []identity.Record
		block []string
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if line != identity.Separator {
			// blank lines between blocks are tolerated
			if line == "" && len(block) == 0 {
				continue
			}
			block = append(block, line)
			continue
		}

		rec, err := identity.ParseRecord(strings.Join(block, "\n"))
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformed, len(recs)+1, err)
		}
		recs = append(recs, rec)
		block = block[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan account log: %w", err)
	}

	if len(block) > 0 {
		return nil, fmt.Errorf("%w: record %d: missing separator", ErrMalformed, len(recs)+1)
	}

	return recs, nil
}
