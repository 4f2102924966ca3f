// Package instrument provides reactive.Observer implementations for
// Prometheus metrics, OpenTelemetry tracing and slog logging.
//
// Attach them to a store at construction or later:
//
//	st := reactive.NewStore(
//	    reactive.WithObserver(instrument.Prometheus(instrument.WithNamespace("myapp"))),
//	    reactive.WithObserver(instrument.OpenTelemetry()),
//	)
//	reactive.Default().Use(instrument.Logger(slog.Default()))
//
// Use Multi to combine several observers into one.
package instrument
