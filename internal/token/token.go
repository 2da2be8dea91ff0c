// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser.
package token

import "fmt"

// Type identifies the lexical category of a Token.
type Type int

const (
	EOF Type = iota

	// single-character tokens
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Minus
	Plus
	Semicolon
	Star
	Slash
	Question
	Colon

	// one or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Break
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	True
	Var
	While
)

var names = [...]string{
	EOF:          "EOF",
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Semicolon:    "SEMICOLON",
	Star:         "STAR",
	Slash:        "SLASH",
	Question:     "QUESTION",
	Colon:        "COLON",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Break:        "BREAK",
	Else:         "ELSE",
	False:        "FALSE",
	For:          "FOR",
	Fun:          "FUN",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Print:        "PRINT",
	Return:       "RETURN",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
}

func (t Type) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Keywords maps reserved identifiers to their token type.
var Keywords = map[string]Type{
	"and":    And,
	"break":  Break,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is a single lexeme produced by the scanner.
//
// Literal holds the decoded value for NUMBER and STRING tokens (the
// unescaped string contents, or the numeric text to be parsed); it is
// empty for every other token type.
type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Line    int
}

func (t Token) String() string {
	lit := t.Literal
	if lit == "" {
		lit = "null"
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, lit)
}
