package reactive

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrReadOnly is matched by every error returned from Set or Update on a
// computed signal.
var ErrReadOnly = errors.New("reactive: computed signal is read only")

// ErrEmptyWatchSet is returned when an effect is registered without any
// signals to watch. Nothing is registered when it is returned.
var ErrEmptyWatchSet = errors.New("reactive: an effect must have at least one signal to watch")

// ErrNilWatch is returned when an effect's watch list contains a nil
// signal. Nothing is registered when it is returned.
var ErrNilWatch = errors.New("reactive: an effect cannot watch a nil signal")

// ReadOnlyError reports a rejected write to a computed signal.
type ReadOnlyError struct {
	// ID identifies the computed signal.
	ID ID

	// Value is the rejected value. For a rejected Update it is the
	// transform function, which is never invoked.
	Value any
}

// Error implements the error interface.
func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("reactive: [value]: %s, cannot be set on signal %d. A computed signal is read only.", e.ValueString(), e.ID)
}

// ValueString renders the rejected value for messages. Functions are
// shown by type and long values are truncated.
func (e *ReadOnlyError) ValueString() string {
	return describe(e.Value)
}

// Is reports whether target is ErrReadOnly.
func (e *ReadOnlyError) Is(target error) bool {
	return target == ErrReadOnly
}

func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return fmt.Sprintf("%T", v)
	}
	s := fmt.Sprintf("%v", v)
	if len(s) > 64 {
		return s[:61] + "..."
	}
	return s
}
