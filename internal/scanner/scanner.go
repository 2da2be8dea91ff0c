// Package scanner turns Willow source text into a token stream. The
// interpreter core only requires a finite token sequence terminated by
// an EOF token, and doesn't care how it was produced.
package scanner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/willow-lang/willow/internal/report"
	"github.com/willow-lang/willow/internal/token"
)

// Scanner converts source bytes into Tokens one at a time.
type Scanner struct {
	source   []byte
	reporter *report.Reporter

	line int
	idx  int
	ch   byte
}

// New creates a Scanner over source, reporting lexical errors to r.
func New(source []byte, r *report.Reporter) *Scanner {
	return &Scanner{source: source, reporter: r, line: 1, idx: -1}
}

// Scan consumes the whole source and returns its tokens, always ending
// with a single EOF token.
func (s *Scanner) Scan() []token.Token {
	toks := make([]token.Token, 0, len(s.source)/4+1)

	for s.next() {
		switch s.ch {
		case ' ', '\t', '\r':
			// ignore
		case '\n':
			s.line++
		case '(':
			toks = append(toks, s.tok(token.LeftParen))
		case ')':
			toks = append(toks, s.tok(token.RightParen))
		case '{':
			toks = append(toks, s.tok(token.LeftBrace))
		case '}':
			toks = append(toks, s.tok(token.RightBrace))
		case ',':
			toks = append(toks, s.tok(token.Comma))
		case '-':
			toks = append(toks, s.tok(token.Minus))
		case '+':
			toks = append(toks, s.tok(token.Plus))
		case ';':
			toks = append(toks, s.tok(token.Semicolon))
		case '*':
			toks = append(toks, s.tok(token.Star))
		case '?':
			toks = append(toks, s.tok(token.Question))
		case ':':
			toks = append(toks, s.tok(token.Colon))
		case '/':
			if s.peek() == '/' {
				s.lineComment()
			} else {
				toks = append(toks, s.tok(token.Slash))
			}
		case '=':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok2(token.EqualEqual, "=="))
			} else {
				toks = append(toks, s.tok(token.Equal))
			}
		case '!':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok2(token.BangEqual, "!="))
			} else {
				toks = append(toks, s.tok(token.Bang))
			}
		case '<':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok2(token.LessEqual, "<="))
			} else {
				toks = append(toks, s.tok(token.Less))
			}
		case '>':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok2(token.GreaterEqual, ">="))
			} else {
				toks = append(toks, s.tok(token.Greater))
			}
		case '"':
			if str, ok := s.stringLiteral(); ok {
				toks = append(toks, token.Token{Type: token.String, Lexeme: str, Literal: strings.Trim(str, "\""), Line: s.line})
			}
		default:
			switch {
			case isDigit(s.ch):
				lexeme, literal := s.numberLiteral()
				toks = append(toks, token.Token{Type: token.Number, Lexeme: lexeme, Literal: literal, Line: s.line})
			case isAlpha(s.ch):
				ident := s.identifier()
				if kw, ok := token.Keywords[ident]; ok {
					toks = append(toks, token.Token{Type: kw, Lexeme: ident, Line: s.line})
				} else {
					toks = append(toks, token.Token{Type: token.Identifier, Lexeme: ident, Line: s.line})
				}
			default:
				if s.reporter != nil {
					s.reporter.Report(s.line, fmt.Sprintf("Unexpected character: %s", string(s.ch)))
				}
			}
		}
	}

	toks = append(toks, token.Token{Type: token.EOF, Line: s.line})
	return toks
}

func (s *Scanner) tok(typ token.Type) token.Token {
	return token.Token{Type: typ, Lexeme: string(s.ch), Line: s.line}
}

func (s *Scanner) tok2(typ token.Type, lexeme string) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: s.line}
}

// next advances to the next byte and reports whether there was one.
func (s *Scanner) next() bool {
	if s.idx == len(s.source)-1 {
		return false
	}
	s.idx++
	s.ch = s.source[s.idx]
	return true
}

func (s *Scanner) peek() byte {
	if s.idx == len(s.source)-1 {
		return 0
	}
	return s.source[s.idx+1]
}

func (s *Scanner) peekTwo() byte {
	if s.idx >= len(s.source)-2 {
		return 0
	}
	return s.source[s.idx+2]
}

func (s *Scanner) lineComment() {
	for s.peek() != '\n' && s.peek() != 0 {
		s.next()
	}
}

func (s *Scanner) stringLiteral() (string, bool) {
	start := s.idx
	for {
		if !s.next() {
			s.reporter.Report(s.line, "Unterminated string.")
			return "", false
		}
		if s.ch == '\n' {
			s.line++
		}
		if s.ch == '"' {
			break
		}
	}
	return string(s.source[start : s.idx+1]), true
}

func (s *Scanner) numberLiteral() (lexeme, literal string) {
	start := s.idx
	for isDigit(s.peek()) {
		s.next()
	}
	if s.peek() == '.' && isDigit(s.peekTwo()) {
		s.next()
		for isDigit(s.peek()) {
			s.next()
		}
	}
	lexeme = string(s.source[start : s.idx+1])
	f, _ := strconv.ParseFloat(lexeme, 64)
	literal = strconv.FormatFloat(f, 'g', -1, 64)
	return lexeme, literal
}

func (s *Scanner) identifier() string {
	start := s.idx
	for isAlphaNumeric(s.peek()) {
		s.next()
	}
	return string(s.source[start : s.idx+1])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
