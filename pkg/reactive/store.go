package reactive

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// Store is the registry of signals and effects and owns the notification
// pass. Both registries are append-only.
//
// The zero value is an empty store with logging discarded.
type Store struct {
	// signals maps every created signal's ID to the signal.
	signals map[ID]Watchable

	// effects holds registered effects in registration order.
	effects []*Effect

	// observers receive engine events.
	observers []Observer

	logger *slog.Logger

	// mu protects signals, effects and observers.
	mu sync.RWMutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for debug records of registrations and
// notification passes. The default discards everything.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver attaches an observer.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		signals: make(map[ID]Watchable),
		logger:  discardLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultStore = NewStore()

// Default returns the process-wide store used by NewSignal, NewComputed
// and CreateEffect.
func Default() *Store {
	return defaultStore
}

// CreateEffect registers fn in the default store to run whenever any of
// the watched signals changes.
func CreateEffect(fn func(), watch ...Watchable) error {
	return Default().CreateEffect(fn, watch...)
}

// Use attaches an observer to a running store.
func (s *Store) Use(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return discardLogger
	}
	return s.logger
}

// register records a newly created signal.
func (s *Store) register(w Watchable) {
	s.mu.Lock()
	if s.signals == nil {
		s.signals = make(map[ID]Watchable)
	}
	s.signals[w.ID()] = w
	observers := s.observers
	s.mu.Unlock()

	s.log().Debug("signal created", "id", w.ID(), "kind", w.Kind().String())
	for _, o := range observers {
		o.SignalCreated(w.ID(), w.Kind())
	}
}

// CreateEffect registers fn to run whenever any signal in watch changes.
// It returns ErrEmptyWatchSet, without registering anything, if watch is
// empty, and ErrNilWatch if any entry is nil. Signals listed more than
// once are watched once.
//
// The callback is not run at registration time.
func (s *Store) CreateEffect(fn func(), watch ...Watchable) error {
	if len(watch) == 0 {
		return s.reject(0, ErrEmptyWatchSet)
	}

	ids := make(map[ID]struct{}, len(watch))
	for _, w := range watch {
		var id ID
		if w != nil {
			id = w.ID()
		}
		if id == 0 {
			return s.reject(0, ErrNilWatch)
		}
		ids[id] = struct{}{}
	}
	e := NewEffect(fn, ids)

	s.mu.Lock()
	s.effects = append(s.effects, e)
	observers := s.observers
	s.mu.Unlock()

	s.log().Debug("effect registered", "id", e.ID(), "watch", len(ids))
	if len(observers) > 0 {
		set := e.WatchSet()
		for _, o := range observers {
			o.EffectRegistered(e.ID(), set)
		}
	}
	return nil
}

// Notify runs the notification pass for id: every registered effect is
// examined in registration order and each one watching id is invoked
// synchronously before Notify returns.
//
// Callbacks run without the store lock held, so they may create signals,
// register effects or set signals. An effect registered during a pass is
// appended to the list being walked and is examined by that same pass.
// Nothing guards against cycles.
func (s *Store) Notify(id ID) {
	start := time.Now()

	scanned, invoked := 0, 0
	for ; ; scanned++ {
		s.mu.RLock()
		if scanned >= len(s.effects) {
			s.mu.RUnlock()
			break
		}
		e := s.effects[scanned]
		s.mu.RUnlock()

		if e.Watches(id) {
			invoked++
			e.run()
		}
	}
	elapsed := time.Since(start)

	s.log().Debug("notification pass", "id", id, "scanned", scanned, "invoked", invoked)

	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Notified(id, scanned, invoked, start, elapsed)
	}
}

// reject reports err to observers and returns it unchanged.
func (s *Store) reject(id ID, err error) error {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Rejected(id, err)
	}
	return err
}

// Lookup returns the signal registered under id.
func (s *Store) Lookup(id ID) (Watchable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.signals[id]
	return w, ok
}

// SignalCount returns the number of signals ever created in the store.
func (s *Store) SignalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.signals)
}

// EffectCount returns the number of effects ever registered in the store.
func (s *Store) EffectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.effects)
}
