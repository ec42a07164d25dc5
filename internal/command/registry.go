package command

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps command words to replies.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	handlers map[string]Reply
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Reply)}
}

// Register adds a handler under name, wrapped in the error boundary.
// Overwrites if name already exists.
// Panics if name is empty or h is nil (programmer error).
func (r *Registry) Register(name string, h Handler) {
	if name == "" {
		panic("command: Register called with empty name")
	}
	if h == nil {
		panic("command: Register called with nil handler")
	}
	r.handlers[name] = Recover(h)
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Reply, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, &UnknownCommandError{Name: name, Available: r.Names()}
	}
	return h, nil
}

// Names returns registered command words in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownCommandError indicates a command word is not registered.
type UnknownCommandError struct {
	Name      string
	Available []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
