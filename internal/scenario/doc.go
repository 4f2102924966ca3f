// Package scenario plays declarative scenario files against a reactive
// store.
//
// A scenario declares int64 signals, computed signals built from a fixed
// set of operations, and effects with explicit watch lists, then runs a
// list of steps that mutate and read them:
//
//	name: counter
//	signals:
//	  - {name: a, value: 1}
//	computed:
//	  - {name: next, op: sum, inputs: [a], offset: 1}
//	effects:
//	  - {name: log, watch: [a]}
//	steps:
//	  - {set: a, value: 2}
//	  - {add: a, by: 1}
//	  - {expect: next, value: 4}
//	  - {expectFired: log, count: 2}
//	  - {set: next, value: 0, expectError: true}
//
// Files ending in .json are accepted too; both formats go through the YAML
// decoder so every error carries a line number.
//
// Computed inputs may only name signals or computed signals declared
// before them, so derivations cannot form cycles.
package scenario
