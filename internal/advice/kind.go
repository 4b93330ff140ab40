// Package advice implements argument binding and invocation for advice
// functions: compiling a per-parameter binding plan from a function
// signature, binding call-time values against it, and invoking the
// function with exact propagation semantics.
package advice

import "fmt"

// Kind identifies when an advice runs relative to the intercepted call.
type Kind int

const (
	// Before advice runs before the intercepted call.
	Before Kind = iota
	// After advice runs after the call, regardless of outcome.
	After
	// AfterReturning advice runs after a call that returned normally.
	AfterReturning
	// AfterThrowing advice runs after a call that failed.
	AfterThrowing
	// Around advice wraps the call and decides whether to proceed.
	Around
)

var kindNames = map[Kind]string{
	Before:         "before",
	After:          "after",
	AfterReturning: "after-returning",
	AfterThrowing:  "after-throwing",
	Around:         "around",
}

// String returns the configuration spelling of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a configuration spelling into a Kind.
func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown advice kind %q", s)
}

// SupportsReturning reports whether the kind may bind a produced return
// value.
func (k Kind) SupportsReturning() bool {
	return k == AfterReturning || k == Around
}

// SupportsThrowing reports whether the kind may bind a thrown error.
func (k Kind) SupportsThrowing() bool {
	return k == AfterThrowing || k == Around
}
