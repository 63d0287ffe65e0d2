package hooks

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when an operation names an id that is not
	// in the hook's local items. No remote call is made.
	ErrItemNotFound = errors.New("item not found")

	// ErrClosed is returned by operations on a closed hook.
	ErrClosed = errors.New("hook closed")
)

// RemoteError reports a failed store call. Its message is what the hook
// stores in State.Error.
type RemoteError struct {
	Op      string // fetch, create, update, delete
	Entity  string
	Err     error
	Timeout bool
}

func (e *RemoteError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("failed to %s %s: operation timed out", e.Op, e.Entity)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
