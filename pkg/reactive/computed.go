package reactive

// Computed is a read-only signal whose value is produced by a derivation
// function on every read. Nothing is cached, so a read always reflects the
// current values of whatever the derivation closes over.
//
// Computed signals have no automatic dependencies. To react to a change in
// a derived value, watch the signals the derivation reads.
type Computed[T any] struct {
	c cell[T]
}

// NewComputed creates a computed signal in the default store.
func NewComputed[T any](derive func() T) *Computed[T] {
	return NewComputedIn(Default(), derive)
}

// NewComputedIn creates a computed signal registered in st. A nil
// derivation reads as the zero value.
func NewComputedIn[T any](st *Store, derive func() T) *Computed[T] {
	c := &Computed[T]{
		c: cell[T]{
			id:     nextID(),
			kind:   KindComputed,
			store:  st,
			derive: derive,
		},
	}
	st.register(c)
	return c
}

// Get runs the derivation and returns its result.
func (c *Computed[T]) Get() T {
	return c.c.get()
}

// Set always fails with a *ReadOnlyError carrying value.
func (c *Computed[T]) Set(value T) error {
	return c.c.set(value)
}

// Update always fails with a *ReadOnlyError; fn is not called.
func (c *Computed[T]) Update(fn func(T) T) error {
	return c.c.update(fn)
}

// ID returns the computed signal's identity, or 0 for a nil signal.
func (c *Computed[T]) ID() ID {
	if c == nil {
		return 0
	}
	return c.c.id
}

// Kind returns KindComputed.
func (c *Computed[T]) Kind() Kind {
	return KindComputed
}
