package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectweave/weave/internal/advice"
	"github.com/aspectweave/weave/internal/engine"
	"github.com/aspectweave/weave/internal/joinpoint"
	"github.com/aspectweave/weave/internal/pointcut"
)

func def(t *testing.T, name string, kind advice.Kind, fn any, opts ...advice.Option) *advice.Definition {
	t.Helper()
	d, err := advice.NewDefinition(name, kind, fn, opts...)
	require.NoError(t, err)
	return d
}

func TestInterceptorOrdering(t *testing.T) {
	var events []string
	e := engine.New(nil)

	i := NewInterceptor(e,
		def(t, "before", advice.Before, func(method string) {
			events = append(events, "before:"+method)
		}, advice.WithArgNames("method")),
		def(t, "around", advice.Around, func(pjp joinpoint.ProceedingJoinPoint) (any, error) {
			events = append(events, "around-enter")
			result, err := pjp.Proceed()
			events = append(events, "around-exit")
			return result, err
		}),
		def(t, "afterReturning", advice.AfterReturning, func(ret any) {
			events = append(events, "returned")
		}, advice.WithArgNames("ret"), advice.WithReturning("ret")),
		def(t, "after", advice.After, func() {
			events = append(events, "after")
		}),
	)

	result, err := i.Intercept(requestStaticPart("GET", "/users"), nil, nil,
		requestCaptures("GET", "/users"),
		func([]any) (any, error) {
			events = append(events, "call")
			return "body", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "body", result)
	assert.Equal(t, []string{"before:GET", "around-enter", "call", "around-exit", "returned", "after"}, events)
}

func TestInterceptorAfterThrowing(t *testing.T) {
	boom := errors.New("boom")
	e := engine.New(nil)

	var caught error
	afterRan := false
	i := NewInterceptor(e,
		def(t, "onFailure", advice.AfterThrowing, func(cause error) {
			caught = cause
		}, advice.WithArgNames("cause"), advice.WithThrowing("cause")),
		def(t, "after", advice.After, func() { afterRan = true }),
	)

	_, err := i.Intercept(requestStaticPart("GET", "/users"), nil, nil,
		requestCaptures("GET", "/users"),
		func([]any) (any, error) { return nil, boom })

	assert.Equal(t, boom, err, "the underlying error reaches the caller unchanged")
	assert.Equal(t, boom, caught)
	assert.True(t, afterRan)
}

func TestInterceptorBeforeAborts(t *testing.T) {
	e := engine.New(nil)
	denied := errors.New("denied")
	called := false

	i := NewInterceptor(e,
		def(t, "gate", advice.Before, func() error { return denied }),
	)

	_, err := i.Intercept(requestStaticPart("POST", "/admin"), nil, nil,
		requestCaptures("POST", "/admin"),
		func([]any) (any, error) {
			called = true
			return nil, nil
		})

	assert.Equal(t, denied, err)
	assert.False(t, called, "the intercepted call must not run after a before advice fails")
}

func TestInterceptorAroundNesting(t *testing.T) {
	var events []string
	e := engine.New(nil)

	mk := func(label string) *advice.Definition {
		return def(t, label, advice.Around, func(pjp joinpoint.ProceedingJoinPoint) (any, error) {
			events = append(events, label+"-enter")
			result, err := pjp.Proceed()
			events = append(events, label+"-exit")
			return result, err
		})
	}
	i := NewInterceptor(e, mk("outer"), mk("inner"))

	_, err := i.Intercept(requestStaticPart("GET", "/"), nil, nil, nil,
		func([]any) (any, error) {
			events = append(events, "call")
			return nil, nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer-enter", "inner-enter", "call", "inner-exit", "outer-exit"}, events)
}

func TestInterceptorNoCapturesForCaptureFreeAdvice(t *testing.T) {
	e := engine.New(nil)
	ran := false

	i := NewInterceptor(e,
		def(t, "trace", advice.Before, func(jp joinpoint.JoinPoint) { ran = true }),
	)

	_, err := i.Intercept(requestStaticPart("GET", "/"), nil, nil, pointcut.Captures(nil),
		func([]any) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.True(t, ran)
}
