// Package errors turns engine, configuration and scenario failures into
// structured diagnostics for the reactive CLI.
//
// Every diagnostic has a code that maps to a registered template:
//
//	R0xx  runtime: engine errors (read-only violation, empty watch-set, nil watch)
//	C0xx  config:  reactive.json and environment problems
//	S0xx  scenario: scenario file problems and failed expectations
//
// # Usage
//
//	err := errors.New("S002").
//	    WithLocation("counter.yaml", 7, 0).
//	    WithDetail(`effect "log" watches unknown signal "b"`)
//
//	fmt.Println(err.Format())
//	// Output:
//	//
//	// ERROR S002: Unknown name
//	//
//	//   counter.yaml:7
//	//
//	//        6 │ effects:
//	//   →    7 │   - {name: log, watch: [b]}
//	//
//	//   effect "log" watches unknown signal "b"
//
// FromEngine maps errors returned by package reactive onto R-codes.
package errors
