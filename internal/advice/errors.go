package advice

import "fmt"

// ConfigurationError reports a static defect in an advice definition,
// detected during plan compilation: unresolvable parameter names, a name
// count mismatch, a declared returning/throwing name absent from the
// parameter list, or an illegal proceeding join point parameter. It is
// surfaced on first use and never retried.
type ConfigurationError struct {
	Advice string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("advice %q: %s", e.Advice, e.Reason)
}

func configErrorf(advice, format string, args ...any) error {
	return &ConfigurationError{Advice: advice, Reason: fmt.Sprintf(format, args...)}
}

// BindingMismatchError reports that the runtime call context cannot
// satisfy a successfully compiled plan: a missing capture map or key, or
// an argument arity/type mismatch. It indicates the plan and the runtime
// pointcut match have diverged, so it is fatal, not retriable. Signature
// and Pointcut identify the advice for diagnosis.
type BindingMismatchError struct {
	Advice    string
	Signature string
	Pointcut  string
	Reason    string
}

func (e *BindingMismatchError) Error() string {
	msg := fmt.Sprintf("cannot bind advice %q %s: %s", e.Advice, e.Signature, e.Reason)
	if e.Pointcut != "" {
		msg += fmt.Sprintf(" (pointcut: %s)", e.Pointcut)
	}
	return msg
}

func (d *Definition) bindErrorf(format string, args ...any) error {
	return &BindingMismatchError{
		Advice:    d.name,
		Signature: d.fnType.String(),
		Pointcut:  d.pointcut.Text,
		Reason:    fmt.Sprintf(format, args...),
	}
}
