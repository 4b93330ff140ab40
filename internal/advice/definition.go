package advice

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aspectweave/weave/internal/pointcut"
)

// Definition is one registered advice: the function to run, its kind, and
// the declarations that drive binding. A Definition lives as long as its
// configuration does and is shared by every goroutine hitting the
// pointcut, so the compiled plan is cached behind a sync.Once: whichever
// caller wins the first-compile race populates it, and both success and
// failure are sticky.
type Definition struct {
	name      string
	kind      Kind
	fn        reflect.Value
	fnType    reflect.Type
	entry     uintptr
	pointcut  pointcut.Expression
	returning string
	throwing  string
	argNames  []string

	compileOnce sync.Once
	plan        *BindingPlan
	compileErr  error
}

// Option configures a Definition at construction time.
type Option func(*Definition)

// WithPointcut attaches the pointcut expression text the advice is bound
// to. The engine uses it for heuristic name inference and diagnostics
// only.
func WithPointcut(text string) Option {
	return func(d *Definition) { d.pointcut = pointcut.Expression{Text: text} }
}

// WithReturning declares the parameter name that receives the intercepted
// call's return value.
func WithReturning(name string) Option {
	return func(d *Definition) { d.returning = name }
}

// WithThrowing declares the parameter name that receives the intercepted
// call's thrown error.
func WithThrowing(name string) Option {
	return func(d *Definition) { d.throwing = name }
}

// WithArgNames supplies the parameter names explicitly, overriding name
// resolution. The list covers the parameters after a leading join-point
// marker, in declaration order.
func WithArgNames(argNames ...string) Option {
	return func(d *Definition) { d.argNames = argNames }
}

// NewDefinition registers fn as an advice of the given kind. fn must be a
// non-variadic function value.
func NewDefinition(name string, kind Kind, fn any, opts ...Option) (*Definition, error) {
	if fn == nil {
		return nil, configErrorf(name, "advice function is nil")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, configErrorf(name, "advice must be a function, got %T", fn)
	}
	if v.IsNil() {
		return nil, configErrorf(name, "advice function is nil")
	}
	if v.Type().IsVariadic() {
		return nil, configErrorf(name, "variadic advice functions are not supported")
	}
	d := &Definition{
		name:   name,
		kind:   kind,
		fn:     v,
		fnType: v.Type(),
		entry:  v.Pointer(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Name returns the configured advice name.
func (d *Definition) Name() string { return d.name }

// Kind returns the advice kind.
func (d *Definition) Kind() Kind { return d.kind }

// Pointcut returns the attached pointcut expression.
func (d *Definition) Pointcut() pointcut.Expression { return d.pointcut }

// Signature renders the advice function type for diagnostics.
func (d *Definition) Signature() string {
	return fmt.Sprintf("%s %s", d.name, d.fnType)
}

// Plan returns the compiled binding plan, compiling it on first use.
// Compilation runs at most once per definition even under concurrent
// first calls; the name-resolution chain and registrar side effects run
// at most once, and a compile failure is reported on every subsequent
// call rather than retried.
func (d *Definition) Plan(c *Compiler) (*BindingPlan, error) {
	d.compileOnce.Do(func() {
		d.plan, d.compileErr = c.Compile(d)
	})
	return d.plan, d.compileErr
}
