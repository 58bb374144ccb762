// File: token.go
// Title: Calculator Tokens
// Description: Token types and the Token value produced by the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial token set

package lexer

import (
	"fmt"
	"strconv"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenEquals     TokenType = iota // =
	TokenPlus                        // +
	TokenMinus                       // -
	TokenMult                        // *
	TokenDiv                         // /
	TokenLeftParen                   // (
	TokenRightParen                  // )
	TokenIdent                       // x, total, a1_b
	TokenValue                       // 42
)

// String returns the name of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEquals:
		return "Equals"
	case TokenPlus:
		return "OpPlus"
	case TokenMinus:
		return "OpMinus"
	case TokenMult:
		return "OpMult"
	case TokenDiv:
		return "OpDiv"
	case TokenLeftParen:
		return "LParen"
	case TokenRightParen:
		return "RParen"
	case TokenIdent:
		return "Ident"
	case TokenValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// symbols maps the single-character tokens to their types
var symbols = map[rune]TokenType{
	'=': TokenEquals,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMult,
	'/': TokenDiv,
	'(': TokenLeftParen,
	')': TokenRightParen,
}

// Token is a lexical token. Text holds the identifier name or the literal
// as written; Value holds the number of a TokenValue. Pos is the byte
// offset of the token in the input line.
type Token struct {
	Type  TokenType
	Text  string
	Value int64
	Pos   int
}

// Ident creates an identifier token
func Ident(name string) Token {
	return Token{Type: TokenIdent, Text: name}
}

// Value creates an integer literal token
func Value(n int64) Token {
	return Token{Type: TokenValue, Text: strconv.FormatInt(n, 10), Value: n}
}

// Symbol creates a single-character token of the given type
func Symbol(tt TokenType) Token {
	for r, t := range symbols {
		if t == tt {
			return Token{Type: tt, Text: string(r)}
		}
	}
	return Token{Type: tt}
}

// Equal reports whether two tokens are structurally equal. Positions and
// the spelling of literals ("042" vs "42") are ignored.
func (t Token) Equal(other Token) bool {
	if t.Type != other.Type {
		return false
	}
	switch t.Type {
	case TokenIdent:
		return t.Text == other.Text
	case TokenValue:
		return t.Value == other.Value
	default:
		return true
	}
}

// String returns a representation such as Ident("x"), Value(3) or RParen
func (t Token) String() string {
	switch t.Type {
	case TokenIdent:
		return fmt.Sprintf("Ident(%q)", t.Text)
	case TokenValue:
		return fmt.Sprintf("Value(%d)", t.Value)
	default:
		return t.Type.String()
	}
}

// EqualTokens reports whether two token sequences are structurally equal
func EqualTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
