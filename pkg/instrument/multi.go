package instrument

import (
	"time"

	"github.com/vango-dev/reactive/pkg/reactive"
)

// MultiObserver forwards every event to each observer in order.
type MultiObserver []reactive.Observer

// Multi combines observers, skipping nils.
func Multi(observers ...reactive.Observer) MultiObserver {
	out := make(MultiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// SignalCreated implements reactive.Observer.
func (m MultiObserver) SignalCreated(id reactive.ID, kind reactive.Kind) {
	for _, o := range m {
		o.SignalCreated(id, kind)
	}
}

// EffectRegistered implements reactive.Observer.
func (m MultiObserver) EffectRegistered(id reactive.ID, watch []reactive.ID) {
	for _, o := range m {
		o.EffectRegistered(id, watch)
	}
}

// Notified implements reactive.Observer.
func (m MultiObserver) Notified(id reactive.ID, scanned, invoked int, start time.Time, elapsed time.Duration) {
	for _, o := range m {
		o.Notified(id, scanned, invoked, start, elapsed)
	}
}

// Rejected implements reactive.Observer.
func (m MultiObserver) Rejected(id reactive.ID, err error) {
	for _, o := range m {
		o.Rejected(id, err)
	}
}
