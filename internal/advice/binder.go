package advice

import (
	"reflect"

	"github.com/aspectweave/weave/internal/joinpoint"
	"github.com/aspectweave/weave/internal/pointcut"
)

// CallContext carries the per-call values an advice's arguments are bound
// from. It is scoped to one intercepted call and never stored.
type CallContext struct {
	// JoinPoint is the current join point handle.
	JoinPoint joinpoint.JoinPoint

	// Captures is the pointcut match's variable map, or nil when the
	// pointcut captures nothing.
	Captures pointcut.Captures

	// Returning is the intercepted call's produced return value.
	// HasReturning distinguishes "returned nil" from "no value produced".
	Returning    any
	HasReturning bool

	// Thrown is the error the intercepted call failed with, if any.
	Thrown error
}

// Bind produces the argument vector for one call of d against its
// compiled plan. The result always has exactly plan.Len() entries; any
// value the context cannot supply is a BindingMismatchError, never a
// silently substituted zero value. Bind is stateless and reentrant.
func Bind(d *Definition, plan *BindingPlan, ctx CallContext) ([]reflect.Value, error) {
	args := make([]reflect.Value, plan.Len())
	for i := range plan.slots {
		slot := plan.slots[i]
		switch slot.Kind {
		case SlotJoinPoint:
			if ctx.JoinPoint == nil {
				return nil, d.bindErrorf("no join point in call context")
			}
			jp := reflect.ValueOf(ctx.JoinPoint)
			if !jp.Type().AssignableTo(slot.Type) {
				return nil, d.bindErrorf("join point %T does not satisfy parameter type %s", ctx.JoinPoint, slot.Type)
			}
			args[i] = jp
		case SlotJoinPointStatic:
			if ctx.JoinPoint == nil {
				return nil, d.bindErrorf("no join point in call context")
			}
			args[i] = reflect.ValueOf(ctx.JoinPoint.StaticPart())
		case SlotVariable:
			if ctx.Captures == nil {
				return nil, d.bindErrorf("plan expects capture %q but the call carries no captures", slot.Name)
			}
			value, ok := ctx.Captures[slot.Name]
			if !ok {
				return nil, d.bindErrorf("capture %q missing from pointcut match", slot.Name)
			}
			rv, err := d.valueFor(slot, value)
			if err != nil {
				return nil, err
			}
			args[i] = rv
		case SlotReturning:
			if !ctx.HasReturning {
				return nil, d.bindErrorf("parameter %q expects a return value but none was produced", slot.Name)
			}
			rv, err := d.valueFor(slot, ctx.Returning)
			if err != nil {
				return nil, err
			}
			args[i] = rv
		case SlotThrowing:
			if ctx.Thrown == nil {
				return nil, d.bindErrorf("parameter %q expects a thrown error but none was thrown", slot.Name)
			}
			rv, err := d.valueFor(slot, ctx.Thrown)
			if err != nil {
				return nil, err
			}
			args[i] = rv
		}
	}
	return args, nil
}

// valueFor converts a bound value to the slot's declared parameter type.
// nil is legal only for nilable parameter types.
func (d *Definition) valueFor(slot ParameterSlot, value any) (reflect.Value, error) {
	if value == nil {
		switch slot.Type.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(slot.Type), nil
		default:
			return reflect.Value{}, d.bindErrorf("parameter %q is %s, cannot bind nil", slot.Name, slot.Type)
		}
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(slot.Type) {
		return reflect.Value{}, d.bindErrorf("parameter %q is %s, cannot bind %s", slot.Name, slot.Type, rv.Type())
	}
	return rv, nil
}
