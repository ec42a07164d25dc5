package command

import (
	"errors"
	"sort"
	"testing"

	"github.com/smileynet/addressbook/internal/book"
)

func constHandler(text string) Handler {
	return func([]string, *book.Book) (string, error) { return text, nil }
}

func TestRegistry(t *testing.T) {
	t.Run("register and look up handler", func(t *testing.T) {
		r := NewRegistry()
		r.Register("ping", constHandler("pong"))

		h, err := r.Lookup("ping")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := h(nil, book.New()); got != "pong" {
			t.Errorf("reply = %q, want %q", got, "pong")
		}
	})

	t.Run("unknown command returns UnknownCommandError", func(t *testing.T) {
		r := NewRegistry()
		r.Register("hello", constHandler("hi"))

		_, err := r.Lookup("nonexistent")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var uce *UnknownCommandError
		if !errors.As(err, &uce) {
			t.Fatalf("expected *UnknownCommandError, got %T", err)
		}
		if uce.Name != "nonexistent" {
			t.Errorf("Name = %q, want %q", uce.Name, "nonexistent")
		}
		if len(uce.Available) != 1 || uce.Available[0] != "hello" {
			t.Errorf("Available = %v, want [hello]", uce.Available)
		}
	})

	t.Run("names returns sorted words", func(t *testing.T) {
		r := NewRegistry()
		r.Register("zebra", constHandler(""))
		r.Register("alpha", constHandler(""))

		got := r.Names()
		want := []string{"alpha", "zebra"}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		if !sort.StringsAreSorted(got) {
			t.Errorf("not sorted: %v", got)
		}
		for i, name := range got {
			if name != want[i] {
				t.Errorf("Names()[%d] = %q, want %q", i, name, want[i])
			}
		}
	})

	t.Run("duplicate registration overwrites", func(t *testing.T) {
		r := NewRegistry()
		r.Register("ping", constHandler("v1"))
		r.Register("ping", constHandler("v2"))

		h, err := r.Lookup("ping")
		if err != nil {
			t.Fatal(err)
		}
		if got := h(nil, book.New()); got != "v2" {
			t.Errorf("reply = %q, want %q", got, "v2")
		}
	})

	t.Run("registered handlers go through the error boundary", func(t *testing.T) {
		r := NewRegistry()
		r.Register("boom", func([]string, *book.Book) (string, error) {
			return "", errors.New("disk on fire")
		})

		h, err := r.Lookup("boom")
		if err != nil {
			t.Fatal(err)
		}
		if got := h(nil, book.New()); got != "Error: disk on fire" {
			t.Errorf("reply = %q, want %q", got, "Error: disk on fire")
		}
	})

	t.Run("empty name panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for empty name")
			}
		}()
		NewRegistry().Register("", constHandler(""))
	})

	t.Run("nil handler panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for nil handler")
			}
		}()
		NewRegistry().Register("x", nil)
	})
}

func TestUnknownCommandError_Message(t *testing.T) {
	err := &UnknownCommandError{Name: "foo", Available: []string{"add", "all"}}
	want := `unknown command "foo" (available: add, all)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
