package advice

import (
	"reflect"

	"github.com/aspectweave/weave/internal/joinpoint"
	"github.com/aspectweave/weave/internal/names"
	"github.com/aspectweave/weave/internal/pointcut"
)

// Marker types recognized at parameter index 0.
var (
	joinPointType  = reflect.TypeOf((*joinpoint.JoinPoint)(nil)).Elem()
	proceedingType = reflect.TypeOf((*joinpoint.ProceedingJoinPoint)(nil)).Elem()
	staticPartType = reflect.TypeOf(joinpoint.StaticPart{})
)

// Compiler turns an advice definition into a BindingPlan. It is stateless
// apart from its collaborators and safe for concurrent use.
type Compiler struct {
	chain     names.Discoverer
	registrar pointcut.VariableRegistrar
}

// NewCompiler creates a compiler. chain resolves parameter names when the
// definition carries no explicit list; registrar receives the
// (name, type) pair of every pointcut-variable slot and may be nil.
func NewCompiler(chain names.Discoverer, registrar pointcut.VariableRegistrar) *Compiler {
	return &Compiler{chain: chain, registrar: registrar}
}

// Compile classifies every parameter of d's function and assembles the
// immutable plan. All defects are ConfigurationErrors: they indicate the
// definition itself is wrong, not the current call.
func (c *Compiler) Compile(d *Definition) (*BindingPlan, error) {
	ft := d.fnType
	total := ft.NumIn()
	slots := make([]ParameterSlot, total)

	// A join-point marker may only be consumed at index 0.
	skip := 0
	if total > 0 {
		p0 := ft.In(0)
		switch p0 {
		case proceedingType:
			if d.kind != Around {
				return nil, configErrorf(d.name, "a proceeding join point parameter is only legal for around advice, not %s", d.kind)
			}
			slots[0] = ParameterSlot{Index: 0, Kind: SlotJoinPoint, Type: p0}
			skip = 1
		case joinPointType:
			slots[0] = ParameterSlot{Index: 0, Kind: SlotJoinPoint, Type: p0}
			skip = 1
		case staticPartType:
			slots[0] = ParameterSlot{Index: 0, Kind: SlotJoinPointStatic, Type: p0}
			skip = 1
		}
	}

	remaining := total - skip
	resolved, err := c.resolveNames(d, skip, remaining)
	if err != nil {
		return nil, err
	}
	if len(resolved) != remaining {
		return nil, configErrorf(d.name, "expected %d parameter names, got %d", remaining, len(resolved))
	}

	boundReturning := false
	boundThrowing := false
	for i := 0; i < remaining; i++ {
		idx := skip + i
		name := resolved[i]
		typ := ft.In(idx)
		switch {
		case d.returning != "" && name == d.returning:
			if !d.kind.SupportsReturning() {
				return nil, configErrorf(d.name, "%s advice cannot bind a returning value", d.kind)
			}
			if boundReturning {
				return nil, configErrorf(d.name, "returning name %q bound twice", name)
			}
			slots[idx] = ParameterSlot{Index: idx, Kind: SlotReturning, Name: name, Type: typ}
			boundReturning = true
		case d.throwing != "" && name == d.throwing:
			if !d.kind.SupportsThrowing() {
				return nil, configErrorf(d.name, "%s advice cannot bind a thrown error", d.kind)
			}
			if boundThrowing {
				return nil, configErrorf(d.name, "throwing name %q bound twice", name)
			}
			slots[idx] = ParameterSlot{Index: idx, Kind: SlotThrowing, Name: name, Type: typ}
			boundThrowing = true
		default:
			if c.registrar != nil {
				if regErr := c.registrar.RegisterVariable(name, typ); regErr != nil {
					return nil, configErrorf(d.name, "cannot register pointcut variable %q: %v", name, regErr)
				}
			}
			slots[idx] = ParameterSlot{Index: idx, Kind: SlotVariable, Name: name, Type: typ}
		}
	}

	if d.returning != "" && !boundReturning {
		return nil, configErrorf(d.name, "returning name %q is not a parameter of the advice", d.returning)
	}
	if d.throwing != "" && !boundThrowing {
		return nil, configErrorf(d.name, "throwing name %q is not a parameter of the advice", d.throwing)
	}

	return newBindingPlan(slots), nil
}

// resolveNames produces names for the parameters after a leading marker:
// the explicit configuration list when present, otherwise the discovery
// chain.
func (c *Compiler) resolveNames(d *Definition, skip, remaining int) ([]string, error) {
	if remaining == 0 {
		return nil, nil
	}
	if len(d.argNames) > 0 {
		return d.argNames, nil
	}
	if c.chain == nil {
		return nil, configErrorf(d.name, "no parameter names declared and no resolution strategy configured")
	}
	resolved, ok := c.chain.DiscoverNames(names.Request{
		FuncType:  d.fnType,
		Entry:     d.entry,
		Skip:      skip,
		Want:      remaining,
		Pointcut:  d.pointcut.Text,
		Returning: d.returning,
		Throwing:  d.throwing,
	})
	if !ok {
		return nil, configErrorf(d.name, "cannot resolve names for %d parameter(s) of %s", remaining, d.fnType)
	}
	return resolved, nil
}
