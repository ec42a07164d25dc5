package command

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/book"
)

// Replies produced by the dispatcher itself.
const (
	MsgEmptyInput     = "Enter a command please."
	MsgInvalidCommand = "Invalid command."
)

// Response is the outcome of one input line.
type Response struct {
	Text string
	Exit bool // the session should end after showing Text
}

// Dispatcher routes input lines to registered commands against a single book.
type Dispatcher struct {
	book     *book.Book
	registry *Registry
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher. A nil logger disables logging.
func NewDispatcher(b *book.Book, r *Registry, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{book: b, registry: r, logger: logger}
}

// ParseInput splits a line into a lower-cased command word and its arguments.
// A blank line yields an empty command word.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Dispatch runs the command on line and returns its reply.
func (d *Dispatcher) Dispatch(line string) Response {
	cmd, args := ParseInput(line)
	if cmd == "" {
		return Response{Text: MsgEmptyInput}
	}

	reply, err := d.registry.Lookup(cmd)
	if err != nil {
		var unknown *UnknownCommandError
		if errors.As(err, &unknown) {
			d.logger.Debug("unknown command", zap.String("command", cmd))
		}
		return Response{Text: MsgInvalidCommand}
	}

	text := reply(args, d.book)
	d.logger.Debug("command handled",
		zap.String("command", cmd),
		zap.Int("args", len(args)),
		zap.Int("contacts", d.book.Len()),
	)
	return Response{Text: text, Exit: isExit(cmd)}
}

func isExit(cmd string) bool {
	return cmd == "close" || cmd == "exit"
}
