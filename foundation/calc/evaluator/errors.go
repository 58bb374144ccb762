// File: errors.go
// Title: Evaluation Errors
// Description: The EvalError type reported when a token sequence cannot
//              be evaluated.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.1.0: Initial error kinds

package evaluator

import (
	"fmt"

	"github.com/msto63/mcalc/foundation/calc/lexer"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
)

// ErrorKind classifies evaluation errors
type ErrorKind int

const (
	// UnexpectedEndOfInput means a token was required but none was left
	UnexpectedEndOfInput ErrorKind = iota
	// UnexpectedToken means a specific token type was required
	UnexpectedToken
	// UnknownIdentifier means a variable was read before assignment
	UnknownIdentifier
	// ExpectedFactor means a token cannot start a factor
	ExpectedFactor
	// DivisionByZero means the right operand of '/' was zero
	DivisionByZero
	// Overflow means a result does not fit into an int64
	Overflow
	// NestingTooDeep means parentheses exceeded Options.MaxDepth
	NestingTooDeep
	// InputTooLong means the line exceeded Options.MaxInputLength
	InputTooLong
	// TrailingInput means tokens followed a complete expression in strict mode
	TrailingInput
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case ExpectedFactor:
		return "ExpectedFactor"
	case DivisionByZero:
		return "DivisionByZero"
	case Overflow:
		return "Overflow"
	case NestingTooDeep:
		return "NestingTooDeep"
	case InputTooLong:
		return "InputTooLong"
	case TrailingInput:
		return "TrailingInput"
	default:
		return "Unknown"
	}
}

// EvalError is returned by the evaluator. Which fields are set depends on
// Kind:
//
//	UnexpectedToken    Expected, Actual
//	ExpectedFactor     Actual
//	TrailingInput      Actual
//	UnknownIdentifier  Name
//	Overflow           Op, Left, Right
//	NestingTooDeep     Limit
//	InputTooLong       Limit, Length
//
// Pos is the byte offset the error refers to, or -1.
type EvalError struct {
	Kind     ErrorKind
	Pos      int
	Expected lexer.TokenType
	Actual   lexer.Token
	Name     string
	Op       lexer.TokenType
	Left     int64
	Right    int64
	Limit    int
	Length   int
}

func (e *EvalError) Error() string {
	var msg string
	switch e.Kind {
	case UnexpectedEndOfInput:
		msg = "unexpectedly reached the end of the tokens"
	case UnexpectedToken:
		msg = fmt.Sprintf("expected %s, but got %s", e.Expected, e.Actual)
	case UnknownIdentifier:
		msg = fmt.Sprintf("unknown identifier '%s'", e.Name)
	case ExpectedFactor:
		msg = fmt.Sprintf("expected a factor, but got %s", e.Actual)
	case DivisionByZero:
		msg = "division by zero"
	case Overflow:
		msg = fmt.Sprintf("integer overflow in %d %s %d", e.Left, opSymbol(e.Op), e.Right)
	case NestingTooDeep:
		msg = fmt.Sprintf("expression nested deeper than %d levels", e.Limit)
	case InputTooLong:
		return fmt.Sprintf("input exceeds maximum length: %d > %d", e.Length, e.Limit)
	case TrailingInput:
		msg = fmt.Sprintf("unexpected %s after complete expression", e.Actual)
	default:
		msg = "evaluation failed"
	}
	if e.Pos < 0 {
		return msg
	}
	return fmt.Sprintf("%s at position %d", msg, e.Pos)
}

// Code implements mdwerror.Coder
func (e *EvalError) Code() mdwerror.Code {
	switch e.Kind {
	case NestingTooDeep, InputTooLong:
		return mdwerror.CodeCalcLimit
	case DivisionByZero, Overflow, UnknownIdentifier:
		return mdwerror.CodeCalcEvaluation
	default:
		return mdwerror.CodeCalcSyntax
	}
}

func opSymbol(tt lexer.TokenType) string {
	return lexer.Symbol(tt).Text
}
