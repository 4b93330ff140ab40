// Package joinpoint models the point in program execution an advice runs
// at: the join point handle passed to advice functions, its static part,
// and the proceed-capable variant available to around advice.
package joinpoint

import "fmt"

// StaticPart describes the intercepted call site independent of any single
// invocation: what is being called, not the call's arguments.
type StaticPart struct {
	// Kind of join point, e.g. "method-execution" or "http-request".
	Kind string
	// Name of the intercepted function or method.
	Name string
	// Signature in printable form, used in diagnostics.
	Signature string
}

// String returns a compact call-site description.
func (s StaticPart) String() string {
	if s.Signature != "" {
		return fmt.Sprintf("%s(%s)", s.Kind, s.Signature)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Name)
}

// JoinPoint is the handle an advice receives for the current intercepted
// call. Implementations must be safe to read from the advice goroutine.
type JoinPoint interface {
	// Args returns the arguments of the intercepted call.
	Args() []any

	// Target returns the object the call is dispatched on, or nil for
	// free functions.
	Target() any

	// StaticPart returns the invocation-independent part of this join point.
	StaticPart() StaticPart

	// String returns a printable description of the join point.
	String() string
}

// ProceedingJoinPoint is a join point that can continue the intercepted
// call. Only around advice may declare a parameter of this type.
type ProceedingJoinPoint interface {
	JoinPoint

	// Proceed runs the intercepted call with its original arguments.
	Proceed() (any, error)

	// ProceedWith runs the intercepted call with replacement arguments.
	ProceedWith(args []any) (any, error)
}

// Invocation is the concrete join point used by the interception adapters.
// The zero value is not usable; construct with NewInvocation.
type Invocation struct {
	static  StaticPart
	target  any
	args    []any
	proceed func(args []any) (any, error)
}

// NewInvocation builds a join point for one intercepted call. proceed may
// be nil for join points that cannot continue the underlying call.
func NewInvocation(static StaticPart, target any, args []any, proceed func(args []any) (any, error)) *Invocation {
	return &Invocation{static: static, target: target, args: args, proceed: proceed}
}

// Args returns the arguments of the intercepted call.
func (inv *Invocation) Args() []any { return inv.args }

// Target returns the object the call is dispatched on.
func (inv *Invocation) Target() any { return inv.target }

// StaticPart returns the invocation-independent part of this join point.
func (inv *Invocation) StaticPart() StaticPart { return inv.static }

// String returns a printable description of the join point.
func (inv *Invocation) String() string { return inv.static.String() }

// CanProceed reports whether the invocation carries a continuation.
func (inv *Invocation) CanProceed() bool { return inv.proceed != nil }

// Proceed runs the intercepted call with its original arguments.
func (inv *Invocation) Proceed() (any, error) {
	return inv.ProceedWith(inv.args)
}

// ProceedWith runs the intercepted call with replacement arguments.
func (inv *Invocation) ProceedWith(args []any) (any, error) {
	if inv.proceed == nil {
		return nil, fmt.Errorf("join point %s cannot proceed", inv.static)
	}
	return inv.proceed(args)
}

var (
	_ JoinPoint           = (*Invocation)(nil)
	_ ProceedingJoinPoint = (*Invocation)(nil)
)
