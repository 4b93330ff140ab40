package advice

import "reflect"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Invoke calls d's advice function with the bound arguments.
//
// A zero-parameter function is called with no arguments regardless of
// args. Arity and type are verified before the call and reported as a
// BindingMismatchError, so reflect can never panic on a mismatch and any
// panic observed by the caller originated inside the advice body and
// propagates unchanged. A trailing non-nil error result is returned as
// that exact error value, never wrapped, so error-handling advice further
// up sees the original failure.
func Invoke(d *Definition, args []reflect.Value) (any, error) {
	ft := d.fnType
	if ft.NumIn() == 0 {
		args = nil
	}
	if len(args) != ft.NumIn() {
		return nil, d.bindErrorf("have %d argument(s) for %d parameter(s)", len(args), ft.NumIn())
	}
	for i, arg := range args {
		if !arg.IsValid() {
			return nil, d.bindErrorf("argument %d is not bound", i)
		}
		if !arg.Type().AssignableTo(ft.In(i)) {
			return nil, d.bindErrorf("argument %d is %s, parameter is %s", i, arg.Type(), ft.In(i))
		}
	}

	out := d.fn.Call(args)

	var thrown error
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if e, _ := out[n-1].Interface().(error); e != nil {
			thrown = e
		}
		out = out[:n-1]
	}
	var result any
	if len(out) > 0 {
		result = out[0].Interface()
	}
	return result, thrown
}
