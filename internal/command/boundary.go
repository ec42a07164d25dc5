package command

import (
	"errors"
	"fmt"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotEnoughArguments = errors.New("command: not enough arguments")
	ErrContactNotFound    = fmt.Errorf("%w: contact", contact.ErrNotFound)
	ErrDuplicatePhone     = errors.New("command: phone already saved")
)

// Fixed replies produced by the error boundary.
const (
	MsgNotEnoughArguments = "Not enough arguments."
	MsgContactNotFound    = "Contact not found."
	MsgPhoneNotFound      = "Phone not found."
	MsgDuplicatePhone     = "Phone already saved."
)

// Handler runs one command against the book. A non-nil error is turned into
// a reply by Recover.
type Handler func(args []string, b *book.Book) (string, error)

// Reply is a Handler after the error boundary: it always yields display text.
type Reply func(args []string, b *book.Book) string

// Recover wraps h so that errors and panics become fixed reply text.
func Recover(h Handler) Reply {
	return func(args []string, b *book.Book) (reply string) {
		defer func() {
			if r := recover(); r != nil {
				reply = fmt.Sprintf("Error: %v", r)
			}
		}()
		text, err := h(args, b)
		if err != nil {
			return ErrorText(err)
		}
		return text
	}
}

// ErrorText maps an error to the reply shown to the user.
func ErrorText(err error) string {
	var verr *contact.ValidationError
	switch {
	case errors.Is(err, ErrNotEnoughArguments):
		return MsgNotEnoughArguments
	case errors.Is(err, ErrContactNotFound):
		return MsgContactNotFound
	case errors.Is(err, contact.ErrPhoneNotFound):
		return MsgPhoneNotFound
	case errors.Is(err, ErrDuplicatePhone):
		return MsgDuplicatePhone
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s.", verr.Field, verr.Reason)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// need returns ErrNotEnoughArguments unless args has at least n entries.
func need(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: want %d, got %d", ErrNotEnoughArguments, n, len(args))
	}
	return nil
}
