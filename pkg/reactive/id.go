package reactive

import (
	"strconv"
	"sync/atomic"
)

// ID is the process-unique identity of a signal or effect.
// The zero ID is never assigned.
type ID uint64

// String returns the ID in decimal form.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// globalIDCounter is the source of unique IDs for all reactive primitives,
// shared across every Store so identities never collide between stores.
var globalIDCounter uint64

// nextID returns the next unique ID. IDs are monotonically increasing and
// never reused.
func nextID() ID {
	return ID(atomic.AddUint64(&globalIDCounter, 1))
}
