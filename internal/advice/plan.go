package advice

import (
	"fmt"
	"reflect"
	"strings"
)

// SlotKind classifies where one advice parameter's value comes from.
type SlotKind int

const (
	// SlotJoinPoint binds the current join point handle. Only legal at
	// parameter index 0.
	SlotJoinPoint SlotKind = iota
	// SlotJoinPointStatic binds the join point's static part. Only legal
	// at parameter index 0, mutually exclusive with SlotJoinPoint.
	SlotJoinPointStatic
	// SlotVariable binds a named pointcut capture.
	SlotVariable
	// SlotReturning binds the intercepted call's produced return value.
	SlotReturning
	// SlotThrowing binds the intercepted call's thrown error.
	SlotThrowing
)

// String returns a short classification label.
func (k SlotKind) String() string {
	switch k {
	case SlotJoinPoint:
		return "join-point"
	case SlotJoinPointStatic:
		return "join-point-static"
	case SlotVariable:
		return "pointcut-variable"
	case SlotReturning:
		return "returning"
	case SlotThrowing:
		return "throwing"
	}
	return fmt.Sprintf("slot(%d)", int(k))
}

// ParameterSlot is the compiled classification of one advice parameter.
// Name is set for variable, returning and throwing slots.
type ParameterSlot struct {
	Index int
	Kind  SlotKind
	Name  string
	Type  reflect.Type
}

// BindingPlan maps every parameter of an advice function to its value
// source, index-aligned with the signature. Immutable once compiled; one
// plan is shared by all concurrent calls of its definition.
type BindingPlan struct {
	slots     []ParameterSlot
	variables int
}

func newBindingPlan(slots []ParameterSlot) *BindingPlan {
	plan := &BindingPlan{slots: slots}
	for _, slot := range slots {
		if slot.Kind == SlotVariable {
			plan.variables++
		}
	}
	return plan
}

// Len returns the number of parameters the plan covers.
func (p *BindingPlan) Len() int { return len(p.slots) }

// Slot returns the slot at parameter index i.
func (p *BindingPlan) Slot(i int) ParameterSlot { return p.slots[i] }

// Slots returns a copy of the slots in parameter order.
func (p *BindingPlan) Slots() []ParameterSlot {
	out := make([]ParameterSlot, len(p.slots))
	copy(out, p.slots)
	return out
}

// VariableCount returns how many pointcut captures the plan expects per
// call.
func (p *BindingPlan) VariableCount() int { return p.variables }

// String renders the plan for diagnostics, e.g.
// "[0:join-point 1:pointcut-variable(id) 2:returning(ret)]".
func (p *BindingPlan) String() string {
	parts := make([]string, len(p.slots))
	for i, slot := range p.slots {
		if slot.Name != "" {
			parts[i] = fmt.Sprintf("%d:%s(%s)", slot.Index, slot.Kind, slot.Name)
		} else {
			parts[i] = fmt.Sprintf("%d:%s", slot.Index, slot.Kind)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
