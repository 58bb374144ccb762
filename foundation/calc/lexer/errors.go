// File: errors.go
// Title: Lexer Errors
// Description: The LexError type reported for input that cannot be
//              tokenized.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial error kinds

package lexer

import (
	"fmt"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
)

// LexErrorKind classifies lexical errors
type LexErrorKind int

const (
	// UnexpectedCharacter is a character that starts no token
	UnexpectedCharacter LexErrorKind = iota
	// InvalidNumber is a run of numerals that is not an int64
	InvalidNumber
	// MalformedContent is input that is not valid UTF-8
	MalformedContent
	// UnexpectedEnd is a token read attempted at the end of the input
	UnexpectedEnd
)

// String returns the name of the error kind
func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case InvalidNumber:
		return "InvalidNumber"
	case MalformedContent:
		return "MalformedContent"
	case UnexpectedEnd:
		return "UnexpectedEnd"
	default:
		return "Unknown"
	}
}

// LexError is returned by the lexer. Char is the offending character for
// UnexpectedCharacter, or the character following the literal for
// InvalidNumber unless AtEnd is set. Literal is the numeral run of an
// InvalidNumber.
type LexError struct {
	Kind    LexErrorKind
	Pos     int
	Char    rune
	Literal string
	AtEnd   bool
}

func (e *LexError) Error() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character '%c' at position %d", e.Char, e.Pos)
	case InvalidNumber:
		got := "reached the end of the content"
		if !e.AtEnd {
			got = fmt.Sprintf("got '%c'", e.Char)
		}
		return fmt.Sprintf("invalid numeric literal %q at position %d: expected numeric value, but %s",
			e.Literal, e.Pos, got)
	case MalformedContent:
		return fmt.Sprintf("malformed UTF-8 content at position %d", e.Pos)
	case UnexpectedEnd:
		return fmt.Sprintf("unexpectedly reached the end of the content at position %d", e.Pos)
	default:
		return fmt.Sprintf("lexical error at position %d", e.Pos)
	}
}

// Code implements mdwerror.Coder
func (e *LexError) Code() mdwerror.Code {
	return mdwerror.CodeCalcSyntax
}
