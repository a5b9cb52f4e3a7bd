package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zarlcorp/zsignup/internal/identity"
)

// Guide runs the line-oriented menu: collect an email and a country,
// generate a record, log it, then walk the user through copying each
// field into the signup form. It returns when the user quits or input
// ends.
func (a *App) Guide(ctx context.Context) error {
	r := bufio.NewReader(a.In)

	for ctx.Err() == nil {
		fmt.Fprintln(a.Out, "\nPlease select an option:")
		fmt.Fprintln(a.Out, "1. Create new account data")
		fmt.Fprintln(a.Out, "2. Quit")

		choice, err := a.prompt(r, "Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			more, err := a.guideOnce(ctx, r)
			if err != nil {
				return endOfInput(err)
			}
			if !more {
				return nil
			}
		case "2":
			return nil
		default:
			fmt.Fprintln(a.Out, "Invalid choice. Please try again.")
		}
	}
	return nil
}

// guideOnce runs one generation round and reports whether the user wants
// another.
func (a *App) guideOnce(ctx context.Context, r *bufio.Reader) (bool, error) {
	fmt.Fprintln(a.Out, "Opening temporary email service...")
	a.open(a.Config.TempMailURL)

	email, err := a.prompt(r, "Paste your temporary email address here: ")
	if err != nil {
		return false, err
	}
	if !identity.ValidEmail(email) {
		fmt.Fprintln(a.Out, "Invalid email format. Try again.")
		return true, nil
	}

	country, err := a.chooseCountry(r)
	if err != nil {
		return false, err
	}

	rec, err := a.Gen.Account(email, country)
	if err != nil {
		return false, err
	}
	a.appendLog(rec)

	fmt.Fprintln(a.Out, "Opening signup page...")
	a.open(a.Config.SignupURL)

	fmt.Fprintln(a.Out, "\n--- Guided fill (press Enter to copy each field) ---")
	for _, f := range rec.FormFields() {
		if ctx.Err() != nil {
			return false, nil
		}
		if err := a.guideField(r, f); err != nil {
			return false, err
		}
	}

	fmt.Fprintf(a.Out, "\nCountry: %s (pick it in the dropdown if not preselected).\n", rec.Country)
	fmt.Fprintf(a.Out, "Date of birth: %s\n", rec.DateOfBirth)
	fmt.Fprintln(a.Out, "\nRemember to agree to the Terms of Service before clicking Continue.")

	more, err := a.prompt(r, "\nGenerate another? (Y/N): ")
	if err != nil {
		return false, err
	}
	return !strings.EqualFold(more, "n"), nil
}

// chooseCountry lists the countries and reads a 1-based choice. Enter or
// anything unrecognized selects the default.
func (a *App) chooseCountry(r *bufio.Reader) (string, error) {
	def := a.Gen.Config().DefaultCountry
	list := identity.Countries()

	fmt.Fprintln(a.Out, "\nSelect country (press Enter for default):")
	for i, c := range list {
		mark := ""
		if c == def {
			mark = " (default)"
		}
		fmt.Fprintf(a.Out, "%d. %s%s\n", i+1, c, mark)
	}

	raw, err := a.prompt(r, fmt.Sprintf("Choice [1-%d, Enter=default]: ", len(list)))
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(list) {
		return list[n-1], nil
	}
	return def, nil
}

// guideField shows one value, waits for Enter and copies it.
func (a *App) guideField(r *bufio.Reader, f identity.Field) error {
	fmt.Fprintf(a.Out, "\n%s: %s\n", f.Label, f.Value)
	if _, err := a.prompt(r, "Press Enter to copy to clipboard... "); err != nil {
		return err
	}

	if err := a.Clip.Copy(f.Value); err != nil {
		a.Logger.Warn("copy to clipboard", "field", f.Label, "err", err)
		fmt.Fprintln(a.Out, "Could not copy automatically. Please copy manually from above.")
		return nil
	}
	fmt.Fprintln(a.Out, "Copied! Paste it in the form (Ctrl+V).")
	return nil
}

// open launches url; failure is a warning only.
func (a *App) open(url string) {
	if err := a.Browser.Open(url); err != nil {
		a.Logger.Warn("open browser", "url", url, "err", err)
		fmt.Fprintf(a.Out, "Could not open the browser. Visit %s manually.\n", url)
	}
}

// prompt writes p and reads one trimmed line. A final line without a
// newline is returned; io.EOF is returned only when nothing was read.
func (a *App) prompt(r *bufio.Reader, p string) (string, error) {
	fmt.Fprint(a.Out, p)
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// endOfInput treats running out of input as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
