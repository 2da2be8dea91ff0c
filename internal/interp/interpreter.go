// Package interp walks a resolved AST and produces effects: print
// output, variable bindings, and function calls. There's no bytecode
// or compilation step, just direct evaluation of the tree the parser
// built and the resolver annotated.
package interp

import (
	"fmt"
	"io"

	"github.com/willow-lang/willow/internal/ast"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/token"
)

// breakSignal unwinds exactly one enclosing WhileStmt. executeBlock
// passes it through unchanged (restoring its frame on the way); the
// while loop is what catches it, so one turning up anywhere else is a
// bug.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

// returnSignal unwinds to the nearest Function.Call, carrying the
// returned value.
type returnSignal struct{ value Value }

func (returnSignal) Error() string { return "return" }

// Interpreter holds the state of one evaluation session: the global
// frame, the currently active frame, and the resolver's depth-map.
// Reusing an Interpreter across REPL lines keeps top-level bindings
// live from one line to the next.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int

	output   io.Writer
	reporter *report.Reporter
	isREPL   bool
}

// New creates an Interpreter writing program output to output and
// diagnostics through reporter. In REPL mode, a bare expression
// statement's value is printed automatically, the way an interactive
// shell should echo back what you just typed; assignments and calls
// are not echoed.
func New(output io.Writer, reporter *report.Reporter, isREPL bool) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockFn)

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expr]int),
		output:      output,
		reporter:    reporter,
		isREPL:      isREPL,
	}
}

// Resolve merges a resolver pass's depth-map into the interpreter's
// own, so statements resolved in one REPL chunk stay resolved for the
// life of the session.
func (in *Interpreter) Resolve(locals map[ast.Expr]int) {
	for expr, depth := range locals {
		in.locals[expr] = depth
	}
}

// Interpret runs a program top to bottom. It reports a runtime error
// through the Reporter and stops at the first one, returning false;
// it returns true if every statement ran without one.
func (in *Interpreter) Interpret(statements []ast.Stmt) bool {
	for _, stmt := range statements {
		if err := in.exec(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				in.reporter.RuntimeError(rerr.Token.Line, rerr.Message)
			} else {
				in.reporter.RuntimeError(0, err.Error())
			}
			return false
		}
	}
	return true
}

// ---- statements ----

func (in *Interpreter) exec(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return in.execExpressionStmt(s)
	case *ast.PrintStmt:
		return in.execPrintStmt(s)
	case *ast.VarStmt:
		return in.execVarStmt(s)
	case *ast.Block:
		return in.executeBlock(s.Statements, NewEnvironment(in.environment))
	case *ast.IfStmt:
		return in.execIfStmt(s)
	case *ast.WhileStmt:
		return in.execWhileStmt(s)
	case *ast.BreakStmt:
		return breakSignal{}
	case *ast.FunctionStmt:
		return in.execFunctionStmt(s)
	case *ast.ReturnStmt:
		return in.execReturnStmt(s)
	default:
		return fmt.Errorf("interp: unhandled statement %T", stmt)
	}
}

func (in *Interpreter) execExpressionStmt(s *ast.ExpressionStmt) error {
	value, err := in.eval(s.Expr)
	if err != nil {
		return err
	}
	if in.isREPL {
		switch s.Expr.(type) {
		case *ast.Assign, *ast.Call:
			// side-effecting forms aren't auto-printed
		default:
			fmt.Fprintln(in.output, stringify(value))
		}
	}
	return nil
}

func (in *Interpreter) execPrintStmt(s *ast.PrintStmt) error {
	value, err := in.eval(s.Expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.output, stringify(value))
	return nil
}

func (in *Interpreter) execVarStmt(s *ast.VarStmt) error {
	var value Value
	if s.Initializer != nil {
		var err error
		value, err = in.eval(s.Initializer)
		if err != nil {
			return err
		}
	}
	in.environment.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) execIfStmt(s *ast.IfStmt) error {
	cond, err := in.eval(s.Condition)
	if err != nil {
		return err
	}
	if truthy(cond) {
		return in.exec(s.Then)
	}
	if s.ElseBranch != nil {
		return in.exec(s.ElseBranch)
	}
	return nil
}

func (in *Interpreter) execWhileStmt(s *ast.WhileStmt) error {
	for {
		cond, err := in.eval(s.Condition)
		if err != nil {
			return err
		}
		if !truthy(cond) {
			return nil
		}
		if err := in.exec(s.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			return err
		}
	}
}

func (in *Interpreter) execFunctionStmt(s *ast.FunctionStmt) error {
	fn := newFunction(s.Name.Lexeme, paramNames(s.Params), s.Body, in.environment)
	in.environment.Define(s.Name.Lexeme, fn)
	return nil
}

func (in *Interpreter) execReturnStmt(s *ast.ReturnStmt) error {
	var value Value
	if s.Value != nil {
		var err error
		value, err = in.eval(s.Value)
		if err != nil {
			return err
		}
	}
	return returnSignal{value: value}
}

// executeBlock runs statements in frame, restoring the previous frame
// on the way out (including when unwinding through a control-flow
// signal or runtime error).
func (in *Interpreter) executeBlock(statements []ast.Stmt, frame *Environment) error {
	previous := in.environment
	in.environment = frame
	defer func() { in.environment = previous }()

	for _, stmt := range statements {
		if err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- expressions ----

func (in *Interpreter) eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return in.eval(e.Inner)
	case *ast.Variable:
		return in.lookupVariable(e.Name, e)
	case *ast.Assign:
		return in.evalAssign(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Ternary:
		return in.evalTernary(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.Function:
		return newFunction("", paramNames(e.Params), e.Body, in.environment), nil
	default:
		return nil, fmt.Errorf("interp: unhandled expression %T", expr)
	}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalAssign(e *ast.Assign) (Value, error) {
	value, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[e]; ok {
		in.environment.AssignAt(distance, e.Name, value)
		return value, nil
	}
	if err := in.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == token.Or {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}
	return in.eval(e.Right)
}

func (in *Interpreter) evalTernary(e *ast.Ternary) (Value, error) {
	cond, err := in.eval(e.Cond)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return in.eval(e.IfTrue)
	}
	return in.eval(e.IfFalse)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.Bang:
		return !truthy(right), nil
	case token.Minus:
		n, ok := isNumber(right)
		if !ok {
			return nil, &RuntimeError{Token: e.Op, Message: "Operand must be a number."}
		}
		return -n, nil
	}
	return nil, fmt.Errorf("interp: unhandled unary operator %s", e.Op.Lexeme)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.BangEqual:
		return !equal(left, right), nil
	case token.EqualEqual:
		return equal(left, right), nil
	case token.Greater:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a > b })
	case token.GreaterEqual:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a >= b })
	case token.Less:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a < b })
	case token.LessEqual:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a <= b })
	case token.Minus:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a - b })
	case token.Slash:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a / b })
	case token.Star:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a * b })
	case token.Plus:
		return evalPlus(e.Op, left, right)
	}
	return nil, fmt.Errorf("interp: unhandled binary operator %s", e.Op.Lexeme)
}

func numberBinary(op token.Token, left, right Value, f func(a, b float64) Value) (Value, error) {
	a, aok := isNumber(left)
	b, bok := isNumber(right)
	if !aok || !bok {
		return nil, &RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	return f(a, b), nil
}

// evalPlus overloads `+` over numbers and strings, but doesn't coerce
// between them: "1" + 1 is a runtime error, not "11".
func evalPlus(op token.Token, left, right Value) (Value, error) {
	if a, ok := isNumber(left); ok {
		if b, ok := isNumber(right); ok {
			return a + b, nil
		}
	}
	if a, ok := isString(left); ok {
		if b, ok := isString(right); ok {
			return a + b, nil
		}
	}
	return nil, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(in, args)
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return names
}
