// Package pointcut defines the surface the binding engine consumes from a
// pointcut implementation: the per-call capture map produced by a match,
// and the registrar that records which variables a pointcut exposes so
// captures can be type-checked.
package pointcut

import (
	"fmt"
	"reflect"
	"sync"
)

// Captures is the result of one pointcut match: the variables it captured
// from the join point, by name. A nil map means the pointcut captures
// nothing.
type Captures map[string]any

// Expression carries the textual pointcut an advice is bound to. The
// engine never parses it for matching; it is used for heuristic parameter
// name inference and for diagnostics.
type Expression struct {
	Text string
}

// String returns the expression text.
func (e Expression) String() string { return e.Text }

// VariableRegistrar records the (name, type) pairs an advice expects the
// pointcut to capture, so later matches can be type-checked.
type VariableRegistrar interface {
	RegisterVariable(name string, typ reflect.Type) error
}

// Schema is a VariableRegistrar that remembers registrations and can
// verify a capture map against them. Safe for concurrent use.
type Schema struct {
	mu    sync.RWMutex
	vars  map[string]reflect.Type
	order []string
}

// NewSchema creates an empty variable schema.
func NewSchema() *Schema {
	return &Schema{vars: make(map[string]reflect.Type)}
}

// RegisterVariable records that the pointcut must capture name with the
// given type. Re-registering a name with a different type is an error;
// re-registering with the same type is a no-op.
func (s *Schema) RegisterVariable(name string, typ reflect.Type) error {
	if name == "" {
		return fmt.Errorf("pointcut variable name must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.vars[name]; ok {
		if existing != typ {
			return fmt.Errorf("pointcut variable %q registered as %s, cannot re-register as %s", name, existing, typ)
		}
		return nil
	}
	s.vars[name] = typ
	s.order = append(s.order, name)
	return nil
}

// VariableType returns the registered type for name.
func (s *Schema) VariableType(name string) (reflect.Type, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	typ, ok := s.vars[name]
	return typ, ok
}

// Variables returns the registered names in registration order.
func (s *Schema) Variables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of registered variables.
func (s *Schema) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vars)
}

// Check verifies that captures contains every registered variable with an
// assignable value. A nil capture value passes for nilable types.
func (s *Schema) Check(captures Captures) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range s.order {
		want := s.vars[name]
		value, ok := captures[name]
		if !ok {
			return fmt.Errorf("pointcut match is missing capture %q", name)
		}
		if value == nil {
			switch want.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
				continue
			default:
				return fmt.Errorf("capture %q is nil but %s is not nilable", name, want)
			}
		}
		if got := reflect.TypeOf(value); !got.AssignableTo(want) {
			return fmt.Errorf("capture %q has type %s, want %s", name, got, want)
		}
	}
	return nil
}

var _ VariableRegistrar = (*Schema)(nil)
