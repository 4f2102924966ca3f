package instrument

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/reactive/pkg/reactive"
)

// LogObserver is a reactive.Observer that writes engine events to a
// slog.Logger. Rejections are logged at Warn, everything else at Debug.
type LogObserver struct {
	logger *slog.Logger
}

// Logger returns an observer logging to l. A nil logger uses slog.Default().
func Logger(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{logger: l.With("component", "reactive")}
}

// SignalCreated implements reactive.Observer.
func (o *LogObserver) SignalCreated(id reactive.ID, kind reactive.Kind) {
	o.logger.Debug("signal created", "id", id, "kind", kind.String())
}

// EffectRegistered implements reactive.Observer.
func (o *LogObserver) EffectRegistered(id reactive.ID, watch []reactive.ID) {
	o.logger.Debug("effect registered", "id", id, "watch", watch)
}

// Notified implements reactive.Observer.
func (o *LogObserver) Notified(id reactive.ID, scanned, invoked int, _ time.Time, elapsed time.Duration) {
	o.logger.Debug("notification pass",
		"id", id,
		"scanned", scanned,
		"invoked", invoked,
		"elapsed", elapsed,
	)
}

// Rejected implements reactive.Observer.
func (o *LogObserver) Rejected(id reactive.ID, err error) {
	o.logger.LogAttrs(context.Background(), slog.LevelWarn, "operation rejected",
		slog.Any("id", id),
		slog.String("kind", rejectionKind(err)),
		slog.String("error", err.Error()),
	)
}
