// Package command implements the address book commands, the registry that
// maps command words to them and the dispatcher that feeds input lines
// through the registry.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

// Replies for successful commands.
const (
	MsgGreeting       = "How can I help you?"
	MsgFarewell       = "Good bye!"
	MsgContactAdded   = "Contact added."
	MsgContactUpdated = "Contact update."
	MsgPhoneChanged   = "Phone changed."
	MsgPhoneRemoved   = "Phone removed."
	MsgBirthdayAdded  = "Birthday added."
	MsgContactDeleted = "Contact deleted."
	MsgNoContacts     = "No contacts saved."
)

// Handlers holds the settings shared by the command handlers.
type Handlers struct {
	now          func() time.Time
	uniquePhones bool
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock sets the source of "today" for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// WithUniquePhones makes add and change reject a phone the contact already has.
func WithUniquePhones(unique bool) Option {
	return func(h *Handlers) {
		h.uniquePhones = unique
	}
}

// NewHandlers creates Handlers using the wall clock and allowing duplicate phones.
func NewHandlers(opts ...Option) *Handlers {
	h := &Handlers{now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds every command to r.
func (h *Handlers) Register(r *Registry) {
	r.Register("hello", h.Hello)
	r.Register("add", h.Add)
	r.Register("change", h.Change)
	r.Register("phone", h.Phone)
	r.Register("remove_phone", h.RemovePhone)
	r.Register("delete", h.Delete)
	r.Register("add_birthday", h.AddBirthday)
	r.Register("show_birthday", h.ShowBirthday)
	r.Register("birthdays", h.Birthdays)
	r.Register("all", h.All)
	r.Register("close", h.Goodbye)
	r.Register("exit", h.Goodbye)
	r.Register("help", func([]string, *book.Book) (string, error) {
		return "Available commands: " + strings.Join(r.Names(), ", "), nil
	})
}

// Hello greets the user.
func (h *Handlers) Hello([]string, *book.Book) (string, error) {
	return MsgGreeting, nil
}

// Goodbye answers close and exit.
func (h *Handlers) Goodbye([]string, *book.Book) (string, error) {
	return MsgFarewell, nil
}

// Add creates the contact if needed and adds a phone to it.
// The phone is validated first so a bad value never leaves an empty contact behind.
func (h *Handlers) Add(args []string, b *book.Book) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]
	if _, err := contact.ParsePhone(phone); err != nil {
		return "", err
	}

	rec, found := b.Find(name)
	if !found {
		var err error
		if rec, err = contact.NewRecord(name); err != nil {
			return "", err
		}
	} else if err := h.checkDuplicate(rec, phone); err != nil {
		return "", err
	}

	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	if !found {
		b.AddRecord(rec)
		return MsgContactAdded, nil
	}
	return MsgContactUpdated, nil
}

// Change replaces one of a contact's phones.
func (h *Handlers) Change(args []string, b *book.Book) (string, error) {
	if err := need(args, 3); err != nil {
		return "", err
	}
	rec, err := find(b, args[0])
	if err != nil {
		return "", err
	}
	oldPhone, newPhone := args[1], args[2]
	if _, ok := rec.FindPhone(oldPhone); ok && oldPhone != newPhone {
		if err := h.checkDuplicate(rec, newPhone); err != nil {
			return "", err
		}
	}
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return MsgPhoneChanged, nil
}

// Phone lists a contact's phones.
func (h *Handlers) Phone(args []string, b *book.Book) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	rec, err := find(b, args[0])
	if err != nil {
		return "", err
	}
	if len(rec.Phones()) == 0 {
		return fmt.Sprintf("%s has no phones saved.", rec.Name()), nil
	}
	return rec.JoinPhones(), nil
}

// RemovePhone deletes one of a contact's phones.
func (h *Handlers) RemovePhone(args []string, b *book.Book) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	rec, err := find(b, args[0])
	if err != nil {
		return "", err
	}
	if err := rec.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return MsgPhoneRemoved, nil
}

// Delete removes a contact. Deleting an unknown name is not an error.
func (h *Handlers) Delete(args []string, b *book.Book) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	b.Delete(args[0])
	return MsgContactDeleted, nil
}

// AddBirthday sets a contact's birthday.
func (h *Handlers) AddBirthday(args []string, b *book.Book) (string, error) {
	if err := need(args, 2); err != nil {
		return "", err
	}
	rec, err := find(b, args[0])
	if err != nil {
		return "", err
	}
	if err := rec.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return MsgBirthdayAdded, nil
}

// ShowBirthday prints a contact's birthday.
func (h *Handlers) ShowBirthday(args []string, b *book.Book) (string, error) {
	if err := need(args, 1); err != nil {
		return "", err
	}
	rec, err := find(b, args[0])
	if err != nil {
		return "", err
	}
	bd, ok := rec.Birthday()
	if !ok {
		return fmt.Sprintf("%s has no birthday saved.", rec.Name()), nil
	}
	return fmt.Sprintf("%s's birthday: %s", rec.Name(), bd), nil
}

// Birthdays lists who to congratulate within the book's window, starting today.
func (h *Handlers) Birthdays(_ []string, b *book.Book) (string, error) {
	upcoming := b.UpcomingBirthdays(h.now())
	if len(upcoming) == 0 {
		return fmt.Sprintf("There are no birthdays in the next %d days.", b.Window()), nil
	}
	lines := make([]string, len(upcoming))
	for i, c := range upcoming {
		lines[i] = fmt.Sprintf("Congratulate %s — %s", c.Name, c.DateString())
	}
	return strings.Join(lines, "\n"), nil
}

// All prints every contact.
func (h *Handlers) All(_ []string, b *book.Book) (string, error) {
	if b.Len() == 0 {
		return MsgNoContacts, nil
	}
	return b.String(), nil
}

func (h *Handlers) checkDuplicate(rec *contact.Record, phone string) error {
	if !h.uniquePhones {
		return nil
	}
	if _, ok := rec.FindPhone(phone); ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, phone)
	}
	return nil
}

func find(b *book.Book, name string) (*contact.Record, error) {
	rec, ok := b.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	return rec, nil
}
