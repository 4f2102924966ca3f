// Package reactive is a small reactive-state propagation engine.
//
// It has three primitives and one coordinator:
//
//	count := reactive.NewSignal(1)                    // mutable cell
//	next := reactive.NewComputed(func() int {          // read-only, derived on every read
//	    return count.Get() + 1
//	})
//	err := reactive.CreateEffect(func() {             // runs when count changes
//	    fmt.Println("count is", count.Get())
//	}, count)
//
//	count.Set(2)                                      // prints "count is 2"
//	count.Update(func(n int) int { return n * 10 })   // prints "count is 20"
//	next.Get()                                        // 21
//
// # Explicit watch-sets
//
// Dependencies are never inferred. An effect runs only when one of the
// signals passed to CreateEffect is set, regardless of what its callback
// reads. Computed signals are not cached and are never notified themselves;
// watch the signals a derivation reads instead.
//
// # Notification
//
// Set and Update run a notification pass before returning: every effect in
// the Store is examined in registration order, and each one watching the
// signal is called synchronously on the calling goroutine. An effect that
// sets a signal triggers a nested pass. There is no batching, deduplication
// or cycle detection, and effects cannot be removed.
//
// # Errors
//
// Set and Update on a Computed return a *ReadOnlyError (errors.Is
// ErrReadOnly). CreateEffect with no signals returns ErrEmptyWatchSet.
// Neither leaves any partial change behind.
//
// # Stores
//
// NewSignal, NewComputed and CreateEffect use the process-wide Default
// store. NewStore creates an isolated one, used with NewSignalIn and
// NewComputedIn. Registries are guarded by a mutex, so primitives may be
// created and set from multiple goroutines; callbacks run without any
// store lock held.
package reactive
