package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willow-lang/willow/internal/token"
)

func name(lexeme string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: lexeme, Line: 1}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	v, err := env.Get(name("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(name("missing"))
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestEnvironmentGetWalksParentChain(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", "outer-value")
	inner := NewEnvironment(outer)

	v, err := inner.Get(name("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer-value", v)
}

func TestEnvironmentAssignUpdatesOwningFrame(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", 1.0)
	inner := NewEnvironment(outer)

	require.NoError(t, inner.Assign(name("a"), 2.0))

	v, _ := outer.Get(name("a"))
	assert.Equal(t, 2.0, v, "assigning from an inner frame updates the frame that owns the binding")

	_, innerHasOwn := inner.values["a"]
	assert.False(t, innerHasOwn, "assignment doesn't shadow into the inner frame")
}

func TestEnvironmentAssignUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(name("missing"), 1.0)
	require.Error(t, err)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", "wrong")
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)
	inner.Define("a", "right")

	assert.Equal(t, "right", inner.GetAt(0, "a"))
	assert.Equal(t, "wrong", inner.GetAt(2, "a"))

	inner.AssignAt(2, name("a"), "updated")
	assert.Equal(t, "updated", global.values["a"])
	assert.Equal(t, "right", inner.values["a"], "AssignAt at a different depth leaves the inner binding alone")
}

func TestEnvironmentDefineOverwritesInSameFrame(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", 1.0)
	env.Define("a", 2.0)

	v, _ := env.Get(name("a"))
	assert.Equal(t, 2.0, v)
}
