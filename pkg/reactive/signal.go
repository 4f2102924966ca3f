package reactive

import "sync"

// Kind distinguishes plain signals from computed signals in the registry.
type Kind uint8

const (
	// KindSignal is a writable signal.
	KindSignal Kind = iota

	// KindComputed is a read-only signal derived on every read.
	KindComputed
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Watchable is anything an effect can watch: *Signal[T] and *Computed[T].
type Watchable interface {
	// ID returns the identity assigned at creation.
	ID() ID

	// Kind reports whether this is a plain or computed signal.
	Kind() Kind
}

// cell is the storage shared by Signal and Computed.
// It holds either a plain value or a derivation; reads go through get in
// both cases.
type cell[T any] struct {
	id    ID
	kind  Kind
	store *Store

	// value is the stored value. Unused when derive is set.
	value T

	// derive, when non-nil, is invoked on every read.
	derive func() T

	// mu protects value.
	mu sync.RWMutex
}

// get returns the derived value if the cell holds a derivation,
// otherwise the stored value.
func (c *cell[T]) get() T {
	if c.kind == KindComputed {
		if c.derive == nil {
			var zero T
			return zero
		}
		return c.derive()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// set replaces the value and runs a notification pass for this cell.
// Computed cells reject the write before anything changes.
func (c *cell[T]) set(value T) error {
	if c.kind == KindComputed {
		return c.store.reject(c.id, &ReadOnlyError{ID: c.id, Value: value})
	}

	c.mu.Lock()
	c.value = value
	c.mu.Unlock()

	c.store.Notify(c.id)
	return nil
}

// update is set(fn(get())). The read-only check runs first so the
// transform is never invoked on a computed cell.
func (c *cell[T]) update(fn func(T) T) error {
	if c.kind == KindComputed {
		return c.store.reject(c.id, &ReadOnlyError{ID: c.id, Value: fn})
	}
	return c.set(fn(c.get()))
}

// Signal is an observable mutable cell.
//
// Get returns the current value. Set and Update replace it and synchronously
// run every effect that watches this signal, in registration order, before
// returning.
type Signal[T any] struct {
	c cell[T]
}

// NewSignal creates a signal in the default store.
func NewSignal[T any](initial T) *Signal[T] {
	return NewSignalIn(Default(), initial)
}

// NewSignalIn creates a signal registered in st.
func NewSignalIn[T any](st *Store, initial T) *Signal[T] {
	s := &Signal[T]{
		c: cell[T]{
			id:    nextID(),
			kind:  KindSignal,
			store: st,
			value: initial,
		},
	}
	st.register(s)
	return s
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	return s.c.get()
}

// Set replaces the value and notifies watching effects. It never fails for
// a plain signal; the error return is shared with Computed.
func (s *Signal[T]) Set(value T) error {
	return s.c.set(value)
}

// Update sets the value to fn applied to the current value.
// The read and the write are separate steps: a concurrent Set between
// them is overwritten.
func (s *Signal[T]) Update(fn func(T) T) error {
	return s.c.update(fn)
}

// ID returns the signal's identity, or 0 for a nil signal.
func (s *Signal[T]) ID() ID {
	if s == nil {
		return 0
	}
	return s.c.id
}

// Kind returns KindSignal.
func (s *Signal[T]) Kind() Kind {
	return KindSignal
}
