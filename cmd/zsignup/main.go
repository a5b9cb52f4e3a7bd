package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zsignup/internal/cli"
	"github.com/zarlcorp/zsignup/internal/config"
	"github.com/zarlcorp/zsignup/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

const usage = `usage: zsignup [command]

with no command, runs the interactive signup helper.

commands:
  version                         print the version
  generate --email E [--country C] [--json] [--no-log]
  batch --email E [--count N] [--country C] [--json] [--no-log]
  password [length]
  name
  dob
  displayname [<first> <last>]
  countries
  history [--json]
  guide                           line-based signup helper
  code [--all]                    find the code in a verification email on stdin
`

func main() {
	app := zapp.New(zapp.WithName("zsignup"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "zsignup: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Printf("zsignup %s\n", version)
			return nil
		case "help", "-h", "--help":
			fmt.Print(usage)
			return nil
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	a, err := cli.New(cfg, logger)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if cli.Interactive(os.Stdin) && cli.Interactive(os.Stdout) {
			return runTUI(a)
		}
		return a.Guide(ctx)
	}

	rest := args[1:]
	switch args[0] {
	case "generate":
		return a.CmdGenerate(rest)
	case "batch":
		return a.CmdBatch(ctx, rest)
	case "password":
		return a.CmdPassword(rest)
	case "name":
		return a.CmdName()
	case "dob":
		return a.CmdDOB()
	case "displayname":
		return a.CmdDisplayName(rest)
	case "countries":
		return a.CmdCountries()
	case "history":
		return a.CmdHistory(rest)
	case "guide":
		return a.Guide(ctx)
	case "code":
		return a.CmdCode(rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runTUI(a *cli.App) error {
	m := tui.New(version, tui.Deps{
		Gen:         a.Gen,
		Log:         a.Log,
		Clip:        a.Clip,
		Browser:     a.Browser,
		TempMailURL: a.Config.TempMailURL,
		SignupURL:   a.Config.SignupURL,
		Logger:      a.Logger,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
