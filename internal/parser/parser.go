// Package parser implements a recursive-descent parser with operator
// precedence, synchronizing error recovery, and for-loop/function
// desugaring.
//
// Grammar (design-level, lowest to highest precedence):
//
//	program    → declaration* EOF
//	declaration→ funDecl | varDecl | statement
//	funDecl    → "fun" IDENT "(" params? ")" block        (only when "fun" is followed by IDENT)
//	varDecl    → "var" IDENT ("=" expression)? ";"
//	statement  → printStmt | block | ifStmt | whileStmt
//	           | forStmt | breakStmt | returnStmt | exprStmt
//	block      → "{" declaration* "}"
//	ifStmt     → "if" "(" expression ")" statement ("else" statement)?
//	whileStmt  → "while" "(" expression ")" statement
//	forStmt    → "for" "(" (varDecl|exprStmt|";") expression? ";" expression? ")" statement
//	breakStmt  → "break" ";"
//	returnStmt → "return" expression? ";"
//	exprStmt   → expression ";"
//	printStmt  → "print" expression ";"
//
//	expression → assignment
//	assignment → ternary ( "=" assignment )?
//	ternary    → logic_or ( "?" ternary ":" ternary )?
//	logic_or   → logic_and ( "or" logic_and )*
//	logic_and  → equality ( "and" equality )*
//	equality   → comparison ( ("!="|"==") comparison )*
//	comparison → term ( (">"|">="|"<"|"<=") term )*
//	term       → factor ( ("+"|"-") factor )*
//	factor     → unary ( ("*"|"/") unary )*
//	unary      → ("!"|"-") unary | call
//	call       → lambda ( "(" arguments? ")" )*
//	lambda     → "fun" "(" params? ")" block | primary
//	primary    → "true"|"false"|"nil"|NUMBER|STRING|"("expression")"|IDENT
//	params     → IDENT ("," IDENT)*        // max 255; non-fatal beyond
//	arguments  → expression ("," expression)*  // max 255; non-fatal beyond
package parser

import (
	"strconv"

	"github.com/willow-lang/willow/internal/ast"
	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/token"
)

const maxArgs = 255

// parseError is panicked to unwind to the nearest declaration() frame,
// which recovers and synchronizes. It carries no data: the diagnostic
// was already sent to the reporter at the point of the error.
type parseError struct{}

// Parser turns a token stream into a program (an ordered Stmt
// sequence). Parse errors are reported through Reporter; the returned
// program may have statements missing where a parse error was
// recovered from.
type Parser struct {
	tokens    []token.Token
	current   int
	reporter  *report.Reporter
	loopDepth int
}

// New creates a Parser over tokens (which must end in an EOF token),
// reporting diagnostics to r.
func New(tokens []token.Token, r *report.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: r}
}

// Parse consumes the entire token stream and returns the program.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.check(token.Fun) && p.checkNext(token.Identifier):
		p.advance()
		return p.funDecl()
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) funDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect function name.")
	p.consume(token.LeftParen, "Expect '(' after function name.")
	params := p.parameters()
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before function body.")
	body := p.blockBody()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.Break):
		return p.breakStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.LeftBrace):
		return &ast.Block{Statements: p.blockBody()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: value}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.errorNonFatal(keyword, "Can't use 'break' outside of a loop.")
	}
	p.consume(token.Semicolon, "Expect ';' after 'break'.")
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after while condition.")
	p.loopDepth++
	body := p.statement()
	p.loopDepth--
	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.check(token.Var):
		p.advance()
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return desugarFor(initializer, condition, increment, body)
}

// desugarFor turns `for (init; cond; inc) body` into
// `{ init; while (cond) { body; inc; } }`.
func desugarFor(initializer ast.Stmt, condition ast.Expr, increment ast.Expr, body ast.Stmt) ast.Stmt {
	if increment != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	loop := ast.Stmt(&ast.WhileStmt{Condition: condition, Body: body})
	if initializer != nil {
		loop = &ast.Block{Statements: []ast.Stmt{initializer, loop}}
	}
	return loop
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

// blockBody consumes declarations up to and including the closing
// brace, without wrapping them in an ast.Block (used both by block
// statements in statement() and by function bodies, which carry a raw
// Stmt slice of their own).
func (p *Parser) blockBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) parameters() []token.Token {
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorNonFatal(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	return params
}

// ---- expressions ----

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}
		}
		p.errorNonFatal(equals, "Invalid assignment target.")
		return expr
	}

	return expr
}

func (p *Parser) ternary() ast.Expr {
	expr := p.logicOr()

	if p.match(token.Question) {
		ifTrue := p.ternary()
		p.consume(token.Colon, "Expect ':' in ternary expression.")
		ifFalse := p.ternary()
		return &ast.Ternary{Cond: expr, IfTrue: ifTrue, IfFalse: ifFalse}
	}

	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EqualEqual, token.BangEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Less, token.LessEqual, token.Greater, token.GreaterEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Plus, token.Minus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.lambdaOrPrimary()
	for {
		if p.match(token.LeftParen) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorNonFatal(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) lambdaOrPrimary() ast.Expr {
	if p.match(token.Fun) {
		p.consume(token.LeftParen, "Expect '(' after 'fun'.")
		params := p.parameters()
		p.consume(token.RightParen, "Expect ')' after parameters.")
		p.consume(token.LeftBrace, "Expect '{' before function body.")
		body := p.blockBody()
		return &ast.Function{Params: params, Body: body}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Number):
		f, _ := strconv.ParseFloat(p.previous().Literal, 64)
		return &ast.Literal{Value: f}
	case p.match(token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	default:
		panic(p.error(p.peek(), "Expect expression."))
	}
}

// ---- token-stream helpers ----

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.error(p.peek(), msg))
}

func (p *Parser) check(t token.Type) bool {
	return !p.atEnd() && p.peek().Type == t
}

// checkNext reports whether the token after the current one has type
// t, without consuming anything. Used to decide funDecl vs. lambda.
func (p *Parser) checkNext(t token.Type) bool {
	if p.atEnd() {
		return false
	}
	next := p.current + 1
	if next >= len(p.tokens) {
		return false
	}
	return p.tokens[next].Type == t
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) error(tok token.Token, msg string) parseError {
	p.errorNonFatal(tok, msg)
	return parseError{}
}

func (p *Parser) errorNonFatal(tok token.Token, msg string) {
	if tok.Type == token.EOF {
		p.reporter.ReportAt(tok.Line, "end", msg)
		return
	}
	p.reporter.ReportAt(tok.Line, tok.Lexeme, msg)
}

// synchronize discards tokens until it has just consumed a ';' or is
// about to consume a statement-starter keyword. Both conditions are
// checked every iteration, and at least one token is always consumed
// first so synchronization always makes progress.
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}

		switch p.peek().Type {
		case token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}
