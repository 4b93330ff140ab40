package pointcut

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	intType = reflect.TypeOf(0)
	strType = reflect.TypeOf("")
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

func TestSchemaRegisterVariable(t *testing.T) {
	s := NewSchema()

	assert.NoError(t, s.RegisterVariable("x", intType))
	assert.NoError(t, s.RegisterVariable("name", strType))

	// Same name, same type is a no-op.
	assert.NoError(t, s.RegisterVariable("x", intType))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"x", "name"}, s.Variables())

	// Same name, different type conflicts.
	err := s.RegisterVariable("x", strType)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot re-register")

	// Empty names are rejected.
	assert.Error(t, s.RegisterVariable("", intType))
}

func TestSchemaVariableType(t *testing.T) {
	s := NewSchema()
	assert.NoError(t, s.RegisterVariable("x", intType))

	typ, ok := s.VariableType("x")
	assert.True(t, ok)
	assert.Equal(t, intType, typ)

	_, ok = s.VariableType("missing")
	assert.False(t, ok)
}

func TestSchemaCheck(t *testing.T) {
	s := NewSchema()
	assert.NoError(t, s.RegisterVariable("x", intType))
	assert.NoError(t, s.RegisterVariable("err", errType))

	assert.NoError(t, s.Check(Captures{"x": 5, "err": nil}))

	err := s.Check(Captures{"x": 5})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `missing capture "err"`)

	err = s.Check(Captures{"x": "five", "err": nil})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `capture "x"`)

	// nil is not acceptable for a non-nilable type.
	s2 := NewSchema()
	assert.NoError(t, s2.RegisterVariable("n", intType))
	assert.Error(t, s2.Check(Captures{"n": nil}))
}

func TestSchemaConcurrentRegister(t *testing.T) {
	s := NewSchema()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.RegisterVariable("x", intType)
				_, _ = s.VariableType("x")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}
