package reactive

import "time"

// Observer receives engine events. Calls are synchronous, on the goroutine
// that caused the event, after the registry change or notification pass has
// completed. Observers must not assume any lock is held.
//
// See package instrument for Prometheus, OpenTelemetry and slog observers.
type Observer interface {
	// SignalCreated is called after a signal or computed signal is registered.
	SignalCreated(id ID, kind Kind)

	// EffectRegistered is called after an effect is added to the registry.
	EffectRegistered(id ID, watch []ID)

	// Notified is called after a notification pass for id. scanned is the
	// number of registered effects examined, invoked the number run.
	Notified(id ID, scanned, invoked int, start time.Time, elapsed time.Duration)

	// Rejected is called when an operation fails. id is the computed
	// signal for read-only violations and zero for empty watch-sets.
	Rejected(id ID, err error)
}
