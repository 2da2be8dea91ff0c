// Package resolver performs the static pre-pass that pins every
// variable reference to a lexical depth before the interpreter ever
// runs: a scope-stack walk over the AST that produces a side-table
// (depth-map) keyed by the referencing Expr node's identity. The
// interpreter then looks up a name by walking exactly that many
// Environment frames instead of searching the whole chain.
package resolver

import (
	"github.com/willow-lang/willow/internal/ast"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/token"
)

// functionType tracks whether resolution is currently inside a
// function body, so `return` outside of one can be flagged.
type functionType int

const (
	funcNone functionType = iota
	funcFunction
)

// Resolver walks a program once, building Locals: for every Variable
// or Assign node, how many enclosing scopes to skip to find its
// binding. A node absent from Locals is resolved at global scope.
type Resolver struct {
	reporter *report.Reporter
	scopes   []map[string]bool
	locals   map[ast.Expr]int

	currentFunction functionType
}

// New creates a Resolver reporting diagnostics to r.
func New(r *report.Reporter) *Resolver {
	return &Resolver{reporter: r, locals: make(map[ast.Expr]int)}
}

// Resolve walks stmts and returns the depth-map. It should be run
// once per top-level program or REPL chunk, over a fresh Resolver.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[ast.Expr]int {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body, funcFunction)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.BreakStmt:
		// Loop-nesting is already validated by the parser's lexical
		// counter; nothing to resolve here.
	case *ast.ReturnStmt:
		if r.currentFunction == funcNone {
			r.reporter.ReportAt(s.Keyword.Line, s.Keyword.Lexeme, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		r.resolveVariableExpr(e)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.IfTrue)
		r.resolveExpr(e.IfFalse)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Function:
		r.resolveFunction(e.Params, e.Body, funcFunction)
	case *ast.Literal:
		// nothing to resolve
	}
}

// resolveVariableExpr flags reading a local from within its own
// initializer. Only the innermost scope is consulted: that's the
// scope the variable being declared lives in, and it's the only one
// where "declared but not yet defined" can mean "this is me" rather
// than a shadowed outer binding.
func (r *Resolver) resolveVariableExpr(e *ast.Variable) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.reporter.ReportAt(e.Name.Line, e.Name.Lexeme, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treat as global, resolved dynamically by
	// the interpreter's outermost Environment.
}

func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt, typ functionType) {
	enclosing := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare records name as known-but-not-yet-initialized in the
// innermost scope, so its own initializer can detect a self-reference.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ReportAt(name.Line, name.Lexeme, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
