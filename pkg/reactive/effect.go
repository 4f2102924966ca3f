package reactive

import "sort"

// Effect is a callback paired with the set of signal IDs it watches.
//
// Effects are created with CreateEffect and live as long as their Store.
// There is no way to dispose of an effect.
type Effect struct {
	id ID

	// fn is invoked with no arguments on every matching notification.
	fn func()

	// watch is the watch-set.
	watch map[ID]struct{}
}

// NewEffect builds an effect without registering it. An empty watch-set is
// accepted here; CreateEffect is what rejects it.
func NewEffect(fn func(), watch map[ID]struct{}) *Effect {
	if watch == nil {
		watch = make(map[ID]struct{})
	}
	return &Effect{
		id:    nextID(),
		fn:    fn,
		watch: watch,
	}
}

// ID returns the effect's identity.
func (e *Effect) ID() ID {
	return e.id
}

// Watches reports whether id is in the watch-set.
func (e *Effect) Watches(id ID) bool {
	_, ok := e.watch[id]
	return ok
}

// WatchSet returns the watched IDs in ascending order.
func (e *Effect) WatchSet() []ID {
	ids := make([]ID, 0, len(e.watch))
	for id := range e.watch {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// run invokes the callback.
func (e *Effect) run() {
	if e.fn != nil {
		e.fn()
	}
}
