package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(false))
	assert.True(t, truthy(true))
	assert.True(t, truthy(0.0), "zero is truthy")
	assert.True(t, truthy(""), "the empty string is truthy")
}

func TestEqual(t *testing.T) {
	assert.True(t, equal(nil, nil))
	assert.False(t, equal(nil, false))
	assert.True(t, equal(1.0, 1.0))
	assert.False(t, equal(1.0, 2.0))
	assert.True(t, equal("a", "a"))
	assert.False(t, equal("a", "b"))
	assert.False(t, equal(1.0, "1"), "no cross-type coercion")
}

func TestStringifyNumbers(t *testing.T) {
	assert.Equal(t, "1", stringify(1.0))
	assert.Equal(t, "-3", stringify(-3.0))
	assert.Equal(t, "0", stringify(0.0))
	assert.Equal(t, "1.5", stringify(1.5))
	assert.Equal(t, "0.1", stringify(0.1))
}

func TestStringifyScalars(t *testing.T) {
	assert.Equal(t, "nil", stringify(nil))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "false", stringify(false))
	assert.Equal(t, "hello", stringify("hello"))
}

func TestStringifyCallable(t *testing.T) {
	fn := newFunction("greet", nil, nil, nil)
	assert.Equal(t, "<fn greet>", stringify(fn))

	lambda := newFunction("", nil, nil, nil)
	assert.Equal(t, "<fn >", stringify(lambda))
}
