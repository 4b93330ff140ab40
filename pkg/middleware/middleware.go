// Package middleware adapts HTTP handler invocations into join points so
// the binding engine can run advice around them. One adapter per
// supported framework; all of them share the Interceptor, which sequences
// advice kinds around a single intercepted call.
package middleware

import (
	"github.com/aspectweave/weave/internal/advice"
	"github.com/aspectweave/weave/internal/engine"
	"github.com/aspectweave/weave/internal/joinpoint"
	"github.com/aspectweave/weave/internal/pointcut"
)

// Interceptor drives a fixed set of advice definitions around intercepted
// calls. Immutable after construction and safe for concurrent use.
type Interceptor struct {
	engine  *engine.Engine
	before  []*advice.Definition
	around  []*advice.Definition
	after   []*advice.Definition
	returns []*advice.Definition
	throws  []*advice.Definition
}

// NewInterceptor groups defs by kind so each call dispatches without
// filtering.
func NewInterceptor(e *engine.Engine, defs ...*advice.Definition) *Interceptor {
	i := &Interceptor{engine: e}
	for _, def := range defs {
		switch def.Kind() {
		case advice.Before:
			i.before = append(i.before, def)
		case advice.Around:
			i.around = append(i.around, def)
		case advice.After:
			i.after = append(i.after, def)
		case advice.AfterReturning:
			i.returns = append(i.returns, def)
		case advice.AfterThrowing:
			i.throws = append(i.throws, def)
		}
	}
	return i
}

// Intercept runs the configured advices around call. Before advices run
// first and abort the call by returning an error; around advices nest in
// registration order, outermost first; after-returning or after-throwing
// advices observe the outcome; after advices always run last. The
// underlying call's error is never masked by a failing after advice.
func (i *Interceptor) Intercept(static joinpoint.StaticPart, target any, args []any, captures pointcut.Captures, call func(args []any) (any, error)) (any, error) {
	jp := joinpoint.NewInvocation(static, target, args, nil)
	for _, def := range i.before {
		if _, err := i.engine.InvokeAdvice(def, advice.CallContext{JoinPoint: jp, Captures: captures}); err != nil {
			return nil, err
		}
	}

	proceed := call
	for idx := len(i.around) - 1; idx >= 0; idx-- {
		def := i.around[idx]
		next := proceed
		proceed = func(callArgs []any) (any, error) {
			inner := joinpoint.NewInvocation(static, target, callArgs, next)
			return i.engine.InvokeAdvice(def, advice.CallContext{JoinPoint: inner, Captures: captures})
		}
	}
	result, callErr := proceed(args)

	var adviceErr error
	if callErr != nil {
		for _, def := range i.throws {
			if _, err := i.engine.InvokeAdvice(def, advice.CallContext{JoinPoint: jp, Captures: captures, Thrown: callErr}); err != nil && adviceErr == nil {
				adviceErr = err
			}
		}
	} else {
		for _, def := range i.returns {
			if _, err := i.engine.InvokeAdvice(def, advice.CallContext{JoinPoint: jp, Captures: captures, Returning: result, HasReturning: true}); err != nil && adviceErr == nil {
				adviceErr = err
			}
		}
	}
	for _, def := range i.after {
		if _, err := i.engine.InvokeAdvice(def, advice.CallContext{JoinPoint: jp, Captures: captures}); err != nil && adviceErr == nil {
			adviceErr = err
		}
	}

	if callErr != nil {
		return result, callErr
	}
	return result, adviceErr
}

// requestCaptures is the capture map every HTTP adapter exposes: advice
// parameters named method and path bind to the request method and route
// path.
func requestCaptures(method, path string) pointcut.Captures {
	return pointcut.Captures{"method": method, "path": path}
}

func requestStaticPart(method, path string) joinpoint.StaticPart {
	return joinpoint.StaticPart{Kind: "http-request", Name: method + " " + path}
}
