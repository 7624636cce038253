// Package errors provides coded, categorized errors for reactree.
//
// Every failure surfaced by the engine, the host tree, configuration
// loading or the CLI carries a short code (e.g., "R002") that maps to a
// message, a longer explanation and, optionally, a hint.
//
// # Categories
//
//   - reactive: state installation and write errors
//   - render: tree realization and reconciliation errors
//   - host: element-tree mutation errors raised by the host
//   - config: project configuration errors
//   - cli: command-line errors
//   - preview: live preview server errors
//   - snapshot: snapshot export errors
//
// # Usage
//
//	err := errors.New("H003").
//	    WithDetail("node 12 is not a child of node 4").
//	    WithSuggestion("Patch against the tree that was last mounted")
//
//	fmt.Println(err.Format())
//
// Errors created from the same code match each other under errors.Is, so
// callers can test for a failure class without comparing messages:
//
//	if errors.Is(err, errors.New("R001")) { ... }
package errors
