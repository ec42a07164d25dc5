// Package book implements the in-memory contact directory and the
// upcoming-birthday query.
package book

import (
	"slices"
	"strings"

	"github.com/smileynet/addressbook/internal/contact"
)

// DefaultWindowDays is the default look-ahead for UpcomingBirthdays.
const DefaultWindowDays = 7

// Book maps contact names to records. Iteration follows the order in which
// names were first added. A Book is not safe for concurrent use.
type Book struct {
	records  map[contact.Name]*contact.Record
	order    []contact.Name
	window   int
	leapDays LeapDayPolicy
}

// Option configures a Book.
type Option func(*Book)

// WithWindow sets the number of days UpcomingBirthdays looks ahead.
// Values below 1 are ignored.
func WithWindow(days int) Option {
	return func(b *Book) {
		if days > 0 {
			b.window = days
		}
	}
}

// WithLeapDayPolicy sets how 29 February birthdays are observed in common years.
func WithLeapDayPolicy(p LeapDayPolicy) Option {
	return func(b *Book) {
		b.leapDays = p
	}
}

// New creates an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		records:  make(map[contact.Name]*contact.Record),
		window:   DefaultWindowDays,
		leapDays: LeapDayFeb28,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Window returns the look-ahead used by UpcomingBirthdays, in days.
func (b *Book) Window() int { return b.window }

// AddRecord inserts r, replacing any record with the same name. A replaced
// record keeps its position in iteration order.
func (b *Book) AddRecord(r *contact.Record) {
	name := r.Name()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Find returns the record for name and whether it exists.
func (b *Book) Find(name string) (*contact.Record, bool) {
	r, ok := b.records[contact.Name(name)]
	return r, ok
}

// Delete removes the record for name. Deleting an absent name is a no-op.
func (b *Book) Delete(name string) {
	n := contact.Name(name)
	if _, ok := b.records[n]; !ok {
		return
	}
	delete(b.records, n)
	b.order = slices.DeleteFunc(b.order, func(o contact.Name) bool { return o == n })
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.records) }

// Records returns the records in iteration order.
func (b *Book) Records() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.order))
	for _, n := range b.order {
		out = append(out, b.records[n])
	}
	return out
}

// String renders one record per line.
func (b *Book) String() string {
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
