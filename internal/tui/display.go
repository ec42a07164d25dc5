package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

const (
	// Welcome is printed once when a session starts.
	Welcome = "Welcome to the assistant bot!"
	// Prompt is printed before every line the plain display reads.
	Prompt = "Enter a command: "
)

// DispatchFunc handles one input line and returns the reply to show.
// exit reports that the session should end after the reply is shown.
// It keeps this package decoupled from the command package.
type DispatchFunc func(line string) (reply string, exit bool)

// Display runs an interactive session, feeding each input line to dispatch.
type Display interface {
	Run(ctx context.Context, dispatch DispatchFunc) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the line prompt even if both ends are a TTY.
}

// NewDisplay returns a TUI display when stdin and stdout are terminals, or a
// plain line display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return &PlainDisplay{in: opts.In, out: opts.Out}
	}

	return &TUIDisplay{in: opts.In, out: opts.Out}
}

// isTTY reports whether v is an *os.File connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay reads commands line by line and prints replies as text.
type PlainDisplay struct {
	in  io.Reader
	out io.Writer
}

// NewPlainDisplay returns a PlainDisplay reading from in and writing to out.
func NewPlainDisplay(in io.Reader, out io.Writer) *PlainDisplay {
	return &PlainDisplay{in: in, out: out}
}

// Run prints the welcome line, then prompts, reads and dispatches lines until
// a reply asks to exit, input ends or ctx is cancelled.
func (d *PlainDisplay) Run(ctx context.Context, dispatch DispatchFunc) error {
	_, _ = fmt.Fprintln(d.out, Welcome)

	sc := bufio.NewScanner(d.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(d.out, Prompt)
		if !sc.Scan() {
			_, _ = fmt.Fprintln(d.out)
			if err := sc.Err(); err != nil {
				return fmt.Errorf("tui: reading input: %w", err)
			}
			return nil
		}

		reply, exit := dispatch(sc.Text())
		_, _ = fmt.Fprintln(d.out, reply)
		if exit {
			return nil
		}
	}
}

// TUIDisplay runs the session as a Bubble Tea program.
// Falls back to PlainDisplay if the program fails.
type TUIDisplay struct {
	in  io.Reader
	out io.Writer
}

// Run starts the Bubble Tea program and blocks until the session ends.
func (d *TUIDisplay) Run(ctx context.Context, dispatch DispatchFunc) error {
	p := tea.NewProgram(NewModel(dispatch),
		tea.WithInput(d.in),
		tea.WithOutput(d.out),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		plain := &PlainDisplay{in: d.in, out: d.out}
		return plain.Run(ctx, dispatch)
	}

	return nil
}
