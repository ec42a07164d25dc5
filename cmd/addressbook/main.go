package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/command"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config string `help:"Config file layered over the user and project files." type:"existingfile" placeholder:"FILE"`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Start   StartCmd         `cmd:"" default:"withargs" help:"Start an interactive session (default)."`
	Run     RunCmd           `cmd:"" help:"Feed commands from a file through the session."`
}

// StartCmd runs an interactive session on the terminal.
type StartCmd struct {
	NoTUI        bool `help:"Force the line prompt even if stdin and stdout are a TTY." default:"false"`
	Window       int  `help:"Days ahead to look for birthdays (overrides config)." placeholder:"N"`
	UniquePhones bool `help:"Reject a phone number the contact already has." default:"false"`
}

// RunCmd feeds commands from a file through the plain line loop.
type RunCmd struct {
	File string `arg:"" help:"Command file, or - for stdin."`
}

// loadConfig loads layered config from the user, project and explicit paths
// with env overrides.
func loadConfig(explicit string) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook.yaml",
		explicit,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads and validates config, applies flag overrides and opens the
// session logger.
func setup(g *Globals, apply func(*config.Config)) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// apply copies flag overrides onto cfg. Flags left at their zero value keep
// the configured value.
func (s *StartCmd) apply(cfg *config.Config) {
	if s.NoTUI {
		cfg.UI.Plain = true
	}
	if s.Window != 0 {
		cfg.Birthdays.WindowDays = s.Window
	}
	if s.UniquePhones {
		cfg.Phones.AllowDuplicates = false
	}
}

// Run executes the start command.
func (s *StartCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g, s.apply)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return s.run(os.Stdin, os.Stdout, cfg, logger)
}

// run wires a session over in and out, enabling testable wiring.
func (s *StartCmd) run(in io.Reader, out io.Writer, cfg *config.Config, logger *zap.Logger) error {
	display := tui.NewDisplay(tui.DisplayOptions{
		In:         in,
		Out:        out,
		ForcePlain: cfg.UI.Plain,
	})
	return runSession(context.Background(), display, newDispatcher(cfg, logger), logger)
}

// Run executes the run command.
func (r *RunCmd) Run(g *Globals) error {
	cfg, logger, err := setup(g, nil)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	in := io.Reader(os.Stdin)
	if r.File != "-" {
		f, err := os.Open(r.File)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	return r.run(in, os.Stdout, cfg, logger)
}

// run feeds in through a plain display, enabling testable wiring.
func (r *RunCmd) run(in io.Reader, out io.Writer, cfg *config.Config, logger *zap.Logger) error {
	display := tui.NewPlainDisplay(in, out)
	return runSession(context.Background(), display, newDispatcher(cfg, logger), logger)
}

// newDispatcher builds an empty book and the command table from cfg.
func newDispatcher(cfg *config.Config, logger *zap.Logger) *command.Dispatcher {
	b := book.New(cfg.BookOptions()...)

	reg := command.NewRegistry()
	command.NewHandlers(command.WithUniquePhones(!cfg.Phones.AllowDuplicates)).Register(reg)

	return command.NewDispatcher(b, reg, logger)
}

// sessionError marks a failure that happened after the session started.
type sessionError struct {
	err error
}

func (e *sessionError) Error() string { return "session: " + e.err.Error() }
func (e *sessionError) Unwrap() error { return e.err }

// runSession drives display until the session ends.
func runSession(ctx context.Context, display tui.Display, d *command.Dispatcher, logger *zap.Logger) error {
	logger.Info("session started", zap.String("display", fmt.Sprintf("%T", display)))

	err := display.Run(ctx, func(line string) (string, bool) {
		resp := d.Dispatch(line)
		return resp.Text, resp.Exit
	})
	if err != nil {
		logger.Error("session failed", zap.Error(err))
		return &sessionError{err: err}
	}

	logger.Info("session ended")
	return nil
}

const (
	exitSuccess = 0
	exitSession = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sessionError
	if errors.As(err, &se) {
		return exitSession
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("Contact manager with phone numbers and birthday reminders."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
