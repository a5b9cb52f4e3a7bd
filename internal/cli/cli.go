// Package cli implements zsignup's command-line subcommands and the
// line-oriented guided flow.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zsignup/internal/accountlog"
	"github.com/zarlcorp/zsignup/internal/browser"
	"github.com/zarlcorp/zsignup/internal/clipboard"
	"github.com/zarlcorp/zsignup/internal/config"
	"github.com/zarlcorp/zsignup/internal/identity"
	"github.com/zarlcorp/zsignup/internal/verify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// defaultBatchCount is used when batch is run without --count.
const defaultBatchCount = 3

// maxBatchWorkers bounds concurrent generation in batch.
const maxBatchWorkers = 4

// App wires the generator to its collaborators.
type App struct {
	Config  *config.Config
	Gen     *identity.Generator
	Log     *accountlog.Log
	Clip    clipboard.Copier
	Browser browser.Opener
	In      io.Reader
	Out     io.Writer
	Logger  *slog.Logger
}

// New builds an App from cfg with the system clipboard and browser and
// the account log at cfg.LogPath().
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	gen, err := identity.New(cfg.Identity())
	if err != nil {
		return nil, err
	}

	accounts := OpenLog(cfg.LogPath())

	var opener browser.Opener = browser.System{}
	if cfg.NoBrowser {
		opener = browser.Nop{}
	}

	return &App{
		Config:  cfg,
		Gen:     gen,
		Log:     accounts,
		Clip:    clipboard.System{},
		Browser: opener,
		In:      os.Stdin,
		Out:     os.Stdout,
		Logger:  logger,
	}, nil
}

// OpenLog opens the account log at path on the OS filesystem. The
// containing directory is created by the first append.
func OpenLog(path string) *accountlog.Log {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return accountlog.Open(zfilesystem.NewOSFileSystem(dir), name)
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// CmdGenerate generates one record for --email and optional --country,
// prints it and appends it to the log unless --no-log is given.
func (a *App) CmdGenerate(args []string) error {
	email, _ := flagValue(args, "--email")
	country, _ := flagValue(args, "--country")

	rec, err := a.Gen.Account(email, country)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if hasFlag(args, "--json") {
		if err := printJSON(a.Out, rec); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(a.Out, rec.Format())
	}

	if !hasFlag(args, "--no-log") {
		a.appendLog(rec)
	}
	return nil
}

// CmdBatch generates --count records concurrently. Each email gets a +N
// tag in its local part so every record is distinct.
func (a *App) CmdBatch(ctx context.Context, args []string) error {
	email, _ := flagValue(args, "--email")
	country, _ := flagValue(args, "--country")

	count := defaultBatchCount
	if v, ok := flagValue(args, "--count"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("batch: invalid --count %q", v)
		}
		count = n
	}

	if !identity.ValidEmail(email) {
		return fmt.Errorf("batch: %w", identity.ErrInvalidEmail)
	}

	recs := make([]identity.Record, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchWorkers)
	for i := range recs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := a.Gen.Account(plusAddress(email, i+1), country)
			if err != nil {
				return err
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	// log in request order once every record exists
	for _, rec := range recs {
		fmt.Fprintln(a.Out, rec.Format())
		a.appendLog(rec)
	}
	return nil
}

// CmdPassword prints a password of the optional length argument.
func (a *App) CmdPassword(args []string) error {
	length := a.Config.PasswordLength
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("password: invalid length %q", args[0])
		}
		length = n
	}
	fmt.Fprintln(a.Out, a.Gen.Password(length))
	return nil
}

// CmdName prints a random first and last name.
func (a *App) CmdName() error {
	first, last := a.Gen.Name()
	fmt.Fprintf(a.Out, "%s %s\n", first, last)
	return nil
}

// CmdDOB prints a date of birth in the configured year range.
func (a *App) CmdDOB() error {
	dob, err := a.Gen.DateOfBirth(a.Config.DOBMinYear, a.Config.DOBMaxYear)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, dob)
	return nil
}

// CmdDisplayName prints a display name derived from the given names, or
// from a random name pair when none are given.
func (a *App) CmdDisplayName(args []string) error {
	var first, last string
	switch len(args) {
	case 0:
		first, last = a.Gen.Name()
	case 2:
		first, last = args[0], args[1]
	default:
		return errors.New("usage: zsignup displayname [<first> <last>]")
	}
	fmt.Fprintln(a.Out, a.Gen.DisplayName(first, last))
	return nil
}

// CmdCountries lists the supported countries, marking the default.
func (a *App) CmdCountries() error {
	def := a.Gen.Config().DefaultCountry
	for i, c := range identity.Countries() {
		mark := ""
		if c == def {
			mark = " (default)"
		}
		fmt.Fprintf(a.Out, "%d. %s%s\n", i+1, c, mark)
	}
	return nil
}

// CmdHistory prints the records in the account log, oldest first.
func (a *App) CmdHistory(args []string) error {
	recs, err := a.Log.Records()
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	if hasFlag(args, "--json") {
		return printJSON(a.Out, recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(a.Out, "no generated accounts")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(a.Out, "  %-19s  %-20s  %-16s  %s\n",
			r.CreatedAt.Format(identity.CreatedLayout),
			r.FirstName+" "+r.LastName,
			r.DisplayName,
			r.Email,
		)
	}
	return nil
}

// CmdCode reads a pasted verification email from stdin and prints the
// confirmation code it contains, copying it to the clipboard. With --all
// every candidate is listed. Values from the newest logged record are
// skipped so a display name is never mistaken for a code.
func (a *App) CmdCode(args []string) error {
	body, err := io.ReadAll(a.In)
	if err != nil {
		return fmt.Errorf("code: read message: %w", err)
	}

	var exclude []string
	if recs, err := a.Log.Records(); err == nil && len(recs) > 0 {
		last := recs[len(recs)-1]
		exclude = []string{last.Password, last.DisplayName}
	}

	found := verify.Find(string(body), exclude...)
	if len(found) == 0 {
		return errors.New("code: no verification code found")
	}

	if hasFlag(args, "--all") {
		for _, c := range found {
			fmt.Fprintf(a.Out, "%-10s %-8s %d\n", c.Value, c.Kind, c.Score)
		}
		return nil
	}

	fmt.Fprintln(a.Out, found[0].Value)
	if err := a.Clip.Copy(found[0].Value); err != nil {
		a.Logger.Warn("copy to clipboard", "field", "verification code", "err", err)
		fmt.Fprintln(a.Out, "Could not copy automatically. Please copy manually from above.")
		return nil
	}
	fmt.Fprintln(a.Out, "copied to clipboard")
	return nil
}

// appendLog writes rec to the account log. Failure is reported, never
// fatal: the record has already been produced.
func (a *App) appendLog(rec identity.Record) {
	if err := a.Log.Append(rec); err != nil {
		a.Logger.Warn("append account log", "err", err)
		fmt.Fprintf(a.Out, "warning: could not save to %s: %v\n", a.Config.LogPath(), err)
	}
}

// plusAddress tags the local part of email with +n.
func plusAddress(email string, n int) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return fmt.Sprintf("%s+%d%s", email[:at], n, email[at:])
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the value of flag given as "--flag value" or
// "--flag=value". Flag names match case-insensitively in both forms, as
// in hasFlag.
func flagValue(args []string, flag string) (string, bool) {
	for i, a := range args {
		name, v, inline := strings.Cut(a, "=")
		if !strings.EqualFold(name, flag) {
			continue
		}
		if inline {
			return v, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}
