package interp

import (
	"fmt"

	"github.com/willow-lang/willow/internal/token"
)

// Environment is one lexical frame: a set of bindings plus a link to
// the enclosing frame. A closure captures the frame active where it
// was created, not the frame active where it's called.
type Environment struct {
	parent *Environment
	values map[string]Value
}

// NewEnvironment creates a frame enclosed by parent, or a top-level
// frame if parent is nil.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]Value)}
}

// Define binds name in this frame, overwriting any existing binding.
// Redeclaring a name in the same scope is allowed: it's convenient for
// a REPL and is otherwise caught, when it matters, by the resolver's
// "already a variable with this name" check.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name by walking the parent chain, the dynamic fallback
// used for globals and for any reference the resolver left unresolved.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign rebinds an existing name, walking the parent chain to find
// where it lives. Assigning to an undeclared name is a runtime error.
func (e *Environment) Assign(name token.Token, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// GetAt reads name from the frame exactly distance hops up the chain,
// the depth the resolver computed ahead of time.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt rebinds name in the frame exactly distance hops up the
// chain.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}
