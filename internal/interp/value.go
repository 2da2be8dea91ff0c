package interp

import (
	"fmt"
	"strconv"

	"github.com/willow-lang/willow/internal/token"
)

// Value is any runtime value: nil, bool, float64, string, or Callable.
// There is no separate wrapper type per kind — using Go's own
// nil/bool/float64/string directly means equality and type assertions
// fall out of the language instead of needing hand-rolled
// Type()/String() methods on every variant.
type Value any

// Callable is anything that can appear on the left of a call
// expression: a user-defined function/lambda or a native builtin.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// RuntimeError is a type mismatch, undefined reference, arity
// mismatch, or non-callable call — anything the interpreter can only
// detect while running. Token pins the source line for the reporter.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// truthy applies the language's truthiness rule: only nil and false
// are falsy, everything else (including 0 and "") is truthy.
func truthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// equal is used by `==`/`!=`. nil only equals nil; numbers and
// strings compare by value; anything else (callables) compares by Go
// identity, which for pointer-backed Callables is reference identity.
func equal(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders v as the interpreter's canonical output form:
// nil -> "nil", bool -> "true"/"false", integral numbers without a
// trailing ".0", non-integral numbers via the shortest round-tripping
// decimal, strings unquoted, user-defined callables as "<fn NAME>" (or
// "<fn >" for an anonymous lambda), native builtins as
// "<native fn NAME>".
func stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case Callable:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func isNumber(v Value) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func isString(v Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
