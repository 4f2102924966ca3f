package errors

import (
	stderrors "errors"

	"github.com/vango-dev/reactive/pkg/reactive"
)

// FromEngine converts an error returned by package reactive into a
// diagnostic. Errors the engine did not produce are wrapped as uncoded
// runtime errors; nil stays nil.
func FromEngine(err error) *ReactiveError {
	if err == nil {
		return nil
	}

	var re *ReactiveError
	if stderrors.As(err, &re) {
		return re
	}

	var ro *reactive.ReadOnlyError
	switch {
	case stderrors.As(err, &ro):
		return New("R001").Wrap(err).WithDetailf("signal %d rejected value %s", ro.ID, ro.ValueString())
	case stderrors.Is(err, reactive.ErrReadOnly):
		return New("R001").Wrap(err)
	case stderrors.Is(err, reactive.ErrEmptyWatchSet):
		return New("R002").Wrap(err)
	case stderrors.Is(err, reactive.ErrNilWatch):
		return New("R003").Wrap(err)
	default:
		return Newf(CategoryRuntime, "%s", err.Error()).Wrap(err)
	}
}
