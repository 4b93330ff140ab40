// Package engine wires the binding engine together and exposes the one
// entry point the interception layer uses: InvokeAdvice, which
// compiles-on-first-use, binds, and invokes uniformly for every advice
// kind.
package engine

import (
	"github.com/aspectweave/weave/internal/advice"
	"github.com/aspectweave/weave/internal/names"
	"github.com/aspectweave/weave/internal/pointcut"
)

// Config holds the collaborators an Engine is assembled from.
type Config struct {
	// Discoverers resolve parameter names, tried in order. Defaults to
	// source discovery followed by pointcut-expression inference.
	Discoverers []names.Discoverer

	// Registrar receives the (name, type) pair of every pointcut-variable
	// slot at compile time. Defaults to a fresh type-checking schema.
	Registrar pointcut.VariableRegistrar
}

// DefaultConfig returns the standard collaborator set.
func DefaultConfig() *Config {
	return &Config{
		Discoverers: []names.Discoverer{
			names.NewSourceDiscoverer(),
			names.ExpressionDiscoverer{},
		},
		Registrar: pointcut.NewSchema(),
	}
}

// Engine is the binding and invocation engine. It is immutable after New
// and safe for concurrent use; per-definition compilation is guarded by
// the definition itself.
type Engine struct {
	compiler  *advice.Compiler
	registrar pointcut.VariableRegistrar
}

// New assembles an engine. A nil config selects DefaultConfig; a config
// with a nil Registrar compiles without registration.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		compiler:  advice.NewCompiler(names.NewChain(cfg.Discoverers...), cfg.Registrar),
		registrar: cfg.Registrar,
	}
}

// Registrar returns the variable registrar compilation reports to.
func (e *Engine) Registrar() pointcut.VariableRegistrar { return e.registrar }

// Compile forces plan compilation for def. Useful to surface
// configuration errors at setup time instead of on the first intercepted
// call; InvokeAdvice does not require it.
func (e *Engine) Compile(def *advice.Definition) (*advice.BindingPlan, error) {
	return def.Plan(e.compiler)
}

// InvokeAdvice binds def's arguments from ctx and invokes the advice
// function. It is used identically regardless of advice kind. The
// returned error is a ConfigurationError on first-use compile failure, a
// BindingMismatchError when ctx cannot satisfy the plan, or the advice
// body's own error, propagated unchanged.
func (e *Engine) InvokeAdvice(def *advice.Definition, ctx advice.CallContext) (any, error) {
	plan, err := def.Plan(e.compiler)
	if err != nil {
		return nil, err
	}
	args, err := advice.Bind(def, plan, ctx)
	if err != nil {
		return nil, err
	}
	return advice.Invoke(def, args)
}
