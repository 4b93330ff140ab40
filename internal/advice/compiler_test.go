package advice

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectweave/weave/internal/joinpoint"
	"github.com/aspectweave/weave/internal/names"
	"github.com/aspectweave/weave/internal/pointcut"
)

// stubDiscoverer returns a fixed name list and counts calls.
type stubDiscoverer struct {
	names []string
	ok    bool
	calls int
}

func (s *stubDiscoverer) DiscoverNames(names.Request) ([]string, bool) {
	s.calls++
	return s.names, s.ok
}

func mustDefinition(t *testing.T, name string, kind Kind, fn any, opts ...Option) *Definition {
	t.Helper()
	d, err := NewDefinition(name, kind, fn, opts...)
	require.NoError(t, err)
	return d
}

func TestCompileJoinPointFirstParameter(t *testing.T) {
	d := mustDefinition(t, "audit", Before,
		func(jp joinpoint.JoinPoint, userID int, action string) {},
		WithArgNames("userID", "action"))
	c := NewCompiler(nil, nil)

	plan, err := c.Compile(d)
	require.NoError(t, err)
	require.Equal(t, 3, plan.Len())
	assert.Equal(t, SlotJoinPoint, plan.Slot(0).Kind)
	assert.Equal(t, SlotVariable, plan.Slot(1).Kind)
	assert.Equal(t, "userID", plan.Slot(1).Name)
	assert.Equal(t, SlotVariable, plan.Slot(2).Kind)
	assert.Equal(t, "action", plan.Slot(2).Name)
	assert.Equal(t, 2, plan.VariableCount())
}

func TestCompileStaticPartFirstParameter(t *testing.T) {
	d := mustDefinition(t, "trace", Before, func(sp joinpoint.StaticPart) {})
	c := NewCompiler(nil, nil)

	plan, err := c.Compile(d)
	require.NoError(t, err)
	require.Equal(t, 1, plan.Len())
	assert.Equal(t, SlotJoinPointStatic, plan.Slot(0).Kind)
}

func TestCompileProceedingOnlyForAround(t *testing.T) {
	fn := func(pjp joinpoint.ProceedingJoinPoint) (any, error) { return pjp.Proceed() }

	d := mustDefinition(t, "retry", Before, fn)
	_, err := NewCompiler(nil, nil).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "only legal for around advice")

	d = mustDefinition(t, "retry", Around, fn)
	plan, err := NewCompiler(nil, nil).Compile(d)
	require.NoError(t, err)
	assert.Equal(t, SlotJoinPoint, plan.Slot(0).Kind)
}

func TestCompileReturningAndThrowing(t *testing.T) {
	d := mustDefinition(t, "observe", Around,
		func(jp joinpoint.ProceedingJoinPoint, ret any, cause error) (any, error) { return nil, nil },
		WithArgNames("ret", "cause"),
		WithReturning("ret"),
		WithThrowing("cause"))

	plan, err := NewCompiler(nil, nil).Compile(d)
	require.NoError(t, err)
	assert.Equal(t, SlotReturning, plan.Slot(1).Kind)
	assert.Equal(t, SlotThrowing, plan.Slot(2).Kind)
	assert.Equal(t, 0, plan.VariableCount())
}

func TestCompileReturningIllegalForKind(t *testing.T) {
	d := mustDefinition(t, "early", Before,
		func(ret any) {},
		WithArgNames("ret"),
		WithReturning("ret"))

	_, err := NewCompiler(nil, nil).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "cannot bind a returning value")
}

func TestCompileThrowingIllegalForKind(t *testing.T) {
	d := mustDefinition(t, "early", AfterReturning,
		func(cause error) {},
		WithArgNames("cause"),
		WithThrowing("cause"))

	_, err := NewCompiler(nil, nil).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "cannot bind a thrown error")
}

func TestCompileReturningNameNotAParameter(t *testing.T) {
	d := mustDefinition(t, "observe", AfterReturning,
		func(x int) {},
		WithArgNames("x"),
		WithReturning("ret"))

	_, err := NewCompiler(nil, nil).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, `returning name "ret" is not a parameter`)
}

func TestCompileNameCountMismatch(t *testing.T) {
	d := mustDefinition(t, "audit", Before,
		func(x, y int) {},
		WithArgNames("x"))

	_, err := NewCompiler(nil, nil).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "expected 2 parameter names, got 1")
}

func TestCompileUsesChainWhenNoExplicitNames(t *testing.T) {
	chain := &stubDiscoverer{names: []string{"orderID"}, ok: true}
	schema := pointcut.NewSchema()
	d := mustDefinition(t, "audit", Before, func(jp joinpoint.JoinPoint, orderID string) {})

	plan, err := NewCompiler(chain, schema).Compile(d)
	require.NoError(t, err)
	assert.Equal(t, 1, chain.calls)
	assert.Equal(t, "orderID", plan.Slot(1).Name)

	// Variable slots are registered with the pointcut schema as they are
	// classified.
	typ, ok := schema.VariableType("orderID")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(""), typ)
}

func TestCompileUnresolvableNames(t *testing.T) {
	d := mustDefinition(t, "audit", Before, func(x int) {})

	_, err := NewCompiler(&stubDiscoverer{ok: false}, nil).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "cannot resolve names")

	// No chain configured at all fails the same way, loudly.
	_, err = NewCompiler(nil, nil).Compile(d)
	require.ErrorAs(t, err, &cfgErr)
}

func TestCompileZeroParameters(t *testing.T) {
	chain := &stubDiscoverer{ok: false}
	d := mustDefinition(t, "noop", After, func() {})

	plan, err := NewCompiler(chain, nil).Compile(d)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Len())
	assert.Equal(t, 0, chain.calls, "nothing to resolve for a zero-parameter advice")
}

func TestCompileRegistrarConflict(t *testing.T) {
	schema := pointcut.NewSchema()
	require.NoError(t, schema.RegisterVariable("id", reflect.TypeOf(0)))

	d := mustDefinition(t, "audit", Before, func(id string) {}, WithArgNames("id"))
	_, err := NewCompiler(nil, schema).Compile(d)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, `cannot register pointcut variable "id"`)
}
