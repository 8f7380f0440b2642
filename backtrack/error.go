// Package backtrack implements the recursive backtracking matcher that
// executes a syntax pattern tree against one line of text.
//
// The matcher explores alternatives depth first: capture group options in
// listed order, '?' with one occurrence before zero, and '+' from the
// longest run down to a single occurrence. Capture bindings made on a path
// that later fails are removed before the next alternative is tried.
//
// Worst-case running time is exponential in the pattern size, as for any
// classic backtracking engine.
package backtrack

import "fmt"

// InvariantError reports a broken contract between the parser and the
// matcher. It is raised with panic, never returned: it indicates a defect,
// not a user error, and must not be mistaken for a failed match.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("backtrack: internal error in %s: %s", e.Op, e.Msg)
}

func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
