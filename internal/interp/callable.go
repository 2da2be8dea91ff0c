package interp

import (
	"fmt"
	"time"

	"github.com/willow-lang/willow/internal/ast"
)

// Function is a user-defined function or lambda, bound to the
// Environment frame active where it was declared: a closure is a
// (body, defining-frame) pair, independent of the frame active at the
// call site.
type Function struct {
	name    string // empty for an anonymous lambda
	params  []string
	body    []ast.Stmt
	closure *Environment
}

func newFunction(name string, params []string, body []ast.Stmt, closure *Environment) *Function {
	return &Function{name: name, params: params, body: body, closure: closure}
}

func (f *Function) Arity() int { return len(f.params) }

// Call runs the function body in a fresh frame, parented by the
// closure frame (not the caller's frame), bound with the call's
// arguments. A returnSignal unwound from the body supplies the result;
// falling off the end yields nil.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	frame := NewEnvironment(f.closure)
	for i, p := range f.params {
		frame.Define(p, args[i])
	}

	err := in.executeBlock(f.body, frame)
	if err == nil {
		return nil, nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.name)
}

// nativeFunction wraps a host-provided builtin (such as `clock`)
// behind the same Callable interface as a user-defined Function, so
// the interpreter's call-expression handling never has to distinguish
// the two.
type nativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (n *nativeFunction) Arity() int { return n.arity }

func (n *nativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}

func (n *nativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.name) }

// clockFn returns the number of seconds since the Unix epoch as a
// float64, matching the host's monotonic-enough wall clock.
var clockFn = &nativeFunction{
	name:  "clock",
	arity: 0,
	fn: func(in *Interpreter, args []Value) (Value, error) {
		return float64(time.Now().UnixNano()) / 1e9, nil
	},
}
