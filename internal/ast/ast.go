// Package ast defines the tagged-union Expr/Stmt node types produced
// by the parser and consumed by the resolver and interpreter.
//
// There is no classic Visitor: the resolver and interpreter dispatch
// with a type switch on the concrete pointer type (*Binary, *IfStmt,
// and so on). A node's Go pointer value is its stable identity — the resolver's
// depth-map is keyed on the Expr interface value itself, which for a
// pointer-receiver type compares by address, not by structural
// equality.
package ast

import (
	"fmt"
	"strings"

	"github.com/willow-lang/willow/internal/token"
)

// Expr is any expression node.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	fmt.Stringer
	stmtNode()
}

// ---- Expressions ----

// Literal is a number, string, boolean, or nil constant.
type Literal struct {
	Value any // float64 | string | bool | nil
}

func (*Literal) exprNode() {}
func (l *Literal) String() string {
	if l.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", l.Value)
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expr
}

func (*Grouping) exprNode() {}
func (g *Grouping) String() string { return fmt.Sprintf("(group %s)", g.Inner) }

// Unary is a prefix `-` or `!` application.
type Unary struct {
	Op    token.Token
	Right Expr
}

func (*Unary) exprNode() {}
func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right) }

// Binary is an arithmetic or comparison operator application.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Binary) exprNode() {}
func (b *Binary) String() string { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }

// Logical is `and`/`or`, which short-circuit and don't coerce the
// result to a boolean.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Logical) exprNode() {}
func (l *Logical) String() string { return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right) }

// Ternary is `cond ? ifTrue : ifFalse`.
type Ternary struct {
	Cond    Expr
	IfTrue  Expr
	IfFalse Expr
}

func (*Ternary) exprNode() {}
func (t *Ternary) String() string {
	return fmt.Sprintf("(? %s %s %s)", t.Cond, t.IfTrue, t.IfFalse)
}

// Variable is a reference to a binding.
type Variable struct {
	Name token.Token
}

func (*Variable) exprNode() {}
func (v *Variable) String() string { return v.Name.Lexeme }

// Assign assigns to an existing binding.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) exprNode() {}
func (a *Assign) String() string { return fmt.Sprintf("(= %s %s)", a.Name.Lexeme, a.Value) }

// Call applies arguments to a callee.
type Call struct {
	Callee Expr
	Paren  token.Token // location for arity/type errors
	Args   []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", c.Callee, strings.Join(args, " "))
}

// Function is an anonymous lambda expression: `fun (params) { body }`.
type Function struct {
	Params []token.Token
	Body   []Stmt
}

func (*Function) exprNode() {}
func (f *Function) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	return fmt.Sprintf("(fun (%s) ...)", strings.Join(names, ", "))
}

// ---- Statements ----

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expr Expr
}

func (*ExpressionStmt) stmtNode() {}
func (e *ExpressionStmt) String() string { return e.Expr.String() + ";" }

// PrintStmt evaluates an expression and prints its canonical form.
type PrintStmt struct {
	Expr Expr
}

func (*PrintStmt) stmtNode() {}
func (p *PrintStmt) String() string { return "print " + p.Expr.String() + ";" }

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if absent
}

func (*VarStmt) stmtNode() {}
func (v *VarStmt) String() string {
	if v.Initializer == nil {
		return fmt.Sprintf("var %s;", v.Name.Lexeme)
	}
	return fmt.Sprintf("var %s = %s;", v.Name.Lexeme, v.Initializer)
}

// Block is a `{ ... }` sequence introducing a new lexical scope.
type Block struct {
	Statements []Stmt
}

func (*Block) stmtNode() {}
func (b *Block) String() string {
	sb := strings.Builder{}
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  " + s.String() + "\n")
	}
	sb.WriteByte('}')
	return sb.String()
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Condition  Expr
	Then       Stmt
	ElseBranch Stmt // nil if absent
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.ElseBranch == nil {
		return fmt.Sprintf("if (%s) %s", i.Condition, i.Then)
	}
	return fmt.Sprintf("if (%s) %s else %s", i.Condition, i.Then, i.ElseBranch)
}

// WhileStmt is a condition-checked loop. A desugared for-loop is a
// WhileStmt wrapped in Blocks.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string { return fmt.Sprintf("while (%s) %s", w.Condition, w.Body) }

// BreakStmt exits the nearest enclosing WhileStmt.
type BreakStmt struct {
	Keyword token.Token
}

func (*BreakStmt) stmtNode() {}
func (*BreakStmt) String() string { return "break;" }

// FunctionStmt is a named function declaration.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (*FunctionStmt) stmtNode() {}
func (f *FunctionStmt) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	return fmt.Sprintf("fun %s(%s) { ... }", f.Name.Lexeme, strings.Join(names, ", "))
}

// ReturnStmt exits the nearest enclosing function call.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if absent; evaluates to nil
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}
