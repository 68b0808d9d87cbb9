package dispatch

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a command name absent from the registry. User-facing
// and recoverable: callers should show the available commands.
var ErrNotFound = errors.New("command not found")

// NotFoundError wraps ErrNotFound with the offending name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// LoadError reports that a command factory failed while constructing its
// implementation. The underlying cause is preserved.
type LoadError struct {
	Name    string
	Locator string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("command %q failed to load from %s: %v", e.Name, e.Locator, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SymbolNotFoundError reports a registry entry with no factory behind it.
// This is a registry/implementation mismatch, i.e. a defect, not user input.
type SymbolNotFoundError struct {
	Name    string
	Locator string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("command %q has no implementation at %s", e.Name, e.Locator)
}
