// Package names resolves the parameter names of an advice function when
// configuration does not declare them explicitly. Go's reflect package
// exposes parameter types but not names, so resolution is best-effort:
// an ordered chain of discovery strategies is tried until one produces a
// complete name list.
package names

import "reflect"

// Request describes one name-resolution attempt.
type Request struct {
	// FuncType is the advice function's type.
	FuncType reflect.Type

	// Entry is the function's entry PC as reported by reflect, or 0 when
	// unknown. Used by source-based discovery.
	Entry uintptr

	// Skip is the number of leading parameters already classified by the
	// compiler (a join-point marker, if any). Strategies that recover the
	// full declared list drop the first Skip names.
	Skip int

	// Want is the number of names the caller needs: the unresolved
	// parameter count after Skip.
	Want int

	// Pointcut is the textual pointcut expression, if any.
	Pointcut string

	// Returning and Throwing are the declared binding names, if any.
	Returning string
	Throwing  string
}

// Discoverer is one name-resolution strategy. It returns a complete,
// ordered list of exactly req.Want names, or reports that it cannot
// resolve. A Discoverer must never return a partial list: a wrong-length
// result is discarded by the chain, since a partial binding would
// silently mis-assign arguments.
type Discoverer interface {
	DiscoverNames(req Request) ([]string, bool)
}

// Chain tries each Discoverer in order and returns the first complete
// result. When two strategies could both resolve a request, the earlier
// one wins; no stronger tie-break is guaranteed.
type Chain struct {
	discoverers []Discoverer
}

// NewChain creates a chain over the given strategies, tried in order.
func NewChain(discoverers ...Discoverer) *Chain {
	return &Chain{discoverers: discoverers}
}

// Resolve runs the chain. It returns a complete name list of length
// req.Want, or false if every strategy is exhausted.
func (c *Chain) Resolve(req Request) ([]string, bool) {
	for _, d := range c.discoverers {
		names, ok := d.DiscoverNames(req)
		if !ok || len(names) != req.Want {
			continue
		}
		return names, true
	}
	return nil, false
}

// DiscoverNames makes Chain usable as a Discoverer inside another chain.
func (c *Chain) DiscoverNames(req Request) ([]string, bool) {
	return c.Resolve(req)
}

var _ Discoverer = (*Chain)(nil)
