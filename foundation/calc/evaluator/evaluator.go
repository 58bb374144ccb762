// File: evaluator.go
// Title: Calculator Recursive Descent Evaluator
// Description: Implements the evaluation phase: tokenizes a line, then
//              walks the token sequence with one function per grammar
//              rule, computing the result while parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.1.0: Initial evaluator implementation

package evaluator

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/msto63/mcalc/foundation/calc/lexer"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
)

const (
	// DefaultMaxDepth is the default limit for nested parentheses
	DefaultMaxDepth = 256
	// DefaultMaxInputLength is the default limit for a line in bytes
	DefaultMaxInputLength = 4096
)

// Options configures evaluator behavior
type Options struct {
	Logger         *mdwlog.Logger
	Vars           *Vars
	MaxDepth       int
	MaxInputLength int
	Strict         bool
	Stdout         io.Writer
	Stderr         io.Writer
}

// Evaluator holds the variable table and the token sequence of the line
// being evaluated.
type Evaluator struct {
	tokens []lexer.Token // nil until the first successful tokenization
	cursor int
	depth  int
	end    int // byte length of the current line

	vars    *Vars
	logger  *mdwlog.Logger
	options Options
}

// New creates an evaluator. Without Options.Vars it starts with an empty
// variable table of its own.
func New(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Vars == nil {
		opts.Vars = NewVars()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return &Evaluator{
		vars:    opts.Vars,
		logger:  opts.Logger.WithField("component", "calc-evaluator"),
		options: opts,
	}
}

// Vars returns the evaluator's variable table
func (e *Evaluator) Vars() *Vars {
	return e.vars
}

// Tokens returns a copy of the current token sequence
func (e *Evaluator) Tokens() []lexer.Token {
	if e.tokens == nil {
		return nil
	}
	out := make([]lexer.Token, len(e.tokens))
	copy(out, e.tokens)
	return out
}

// Run evaluates line and writes the result to Stdout, or the error
// message to Stderr.
func (e *Evaluator) Run(line string) {
	value, err := e.Eval(line)
	if err != nil {
		fmt.Fprintln(e.options.Stderr, err)
		return
	}
	fmt.Fprintln(e.options.Stdout, value)
}

// Eval tokenizes and evaluates one line. Errors are *lexer.LexError or
// *EvalError. The variable table only changes when an assignment
// succeeds.
func (e *Evaluator) Eval(line string) (int64, error) {
	if len(line) > e.options.MaxInputLength {
		err := &EvalError{Kind: InputTooLong, Pos: -1, Limit: e.options.MaxInputLength, Length: len(line)}
		e.logFailure(line, err)
		return 0, err
	}

	tokens, err := lexer.Tokenize(line)
	if err != nil {
		e.logFailure(line, err)
		return 0, err
	}
	e.tokens = tokens
	e.end = len(line)

	e.logger.Trace("evaluating line", mdwlog.Fields{
		"input":  line,
		"tokens": len(tokens),
	})

	value, err := e.eval()
	if err != nil {
		e.logFailure(line, err)
		return 0, err
	}

	e.logger.Debug("line evaluated", mdwlog.Fields{
		"input":  line,
		"result": value,
	})
	return value, nil
}

func (e *Evaluator) logFailure(line string, err error) {
	fields := mdwlog.Fields{"input": line, "error": err.Error()}
	switch typed := err.(type) {
	case *lexer.LexError:
		fields["kind"] = typed.Kind.String()
	case *EvalError:
		fields["kind"] = typed.Kind.String()
	}
	e.logger.Debug("line rejected", fields)
}

// eval dispatches on the second token: IDENT '=' starts an assignment
func (e *Evaluator) eval() (int64, error) {
	e.cursor = 0
	e.depth = 0

	if tok, ok := e.peekAhead(1); ok && tok.Type == lexer.TokenEquals {
		return e.evalAssign()
	}

	value, err := e.evalCalc()
	if err != nil {
		return 0, err
	}
	if err := e.checkEnd(); err != nil {
		return 0, err
	}
	return value, nil
}

func (e *Evaluator) evalAssign() (int64, error) {
	name, err := e.ident()
	if err != nil {
		return 0, err
	}
	if err := e.consume(lexer.TokenEquals); err != nil {
		return 0, err
	}

	value, err := e.evalCalc()
	if err != nil {
		return 0, err
	}
	if err := e.checkEnd(); err != nil {
		return 0, err
	}

	e.vars.Set(name, value)
	e.logger.Trace("variable assigned", mdwlog.Fields{"name": name, "value": value})
	return value, nil
}

func (e *Evaluator) evalCalc() (int64, error) {
	result, err := e.evalTerm()
	if err != nil {
		return 0, err
	}

	for {
		op, ok := e.peek()
		if !ok || (op.Type != lexer.TokenPlus && op.Type != lexer.TokenMinus) {
			return result, nil
		}
		e.cursor++

		rhs, err := e.evalTerm()
		if err != nil {
			return 0, err
		}
		if result, err = apply(op, result, rhs); err != nil {
			return 0, err
		}
	}
}

func (e *Evaluator) evalTerm() (int64, error) {
	result, err := e.evalFactor()
	if err != nil {
		return 0, err
	}

	for {
		op, ok := e.peek()
		if !ok || (op.Type != lexer.TokenMult && op.Type != lexer.TokenDiv) {
			return result, nil
		}
		e.cursor++

		rhs, err := e.evalFactor()
		if err != nil {
			return 0, err
		}
		if result, err = apply(op, result, rhs); err != nil {
			return 0, err
		}
	}
}

func (e *Evaluator) evalFactor() (int64, error) {
	tok, err := e.next()
	if err != nil {
		return 0, err
	}

	switch tok.Type {
	case lexer.TokenValue:
		return tok.Value, nil

	case lexer.TokenIdent:
		value, ok := e.vars.Get(tok.Text)
		if !ok {
			return 0, &EvalError{Kind: UnknownIdentifier, Pos: tok.Pos, Name: tok.Text}
		}
		return value, nil

	case lexer.TokenLeftParen:
		e.depth++
		defer func() { e.depth-- }()
		if e.depth > e.options.MaxDepth {
			return 0, &EvalError{Kind: NestingTooDeep, Pos: tok.Pos, Limit: e.options.MaxDepth}
		}

		value, err := e.evalCalc()
		if err != nil {
			return 0, err
		}
		if err := e.consume(lexer.TokenRightParen); err != nil {
			return 0, err
		}
		return value, nil

	default:
		return 0, &EvalError{Kind: ExpectedFactor, Pos: tok.Pos, Actual: tok}
	}
}

// apply folds rhs into lhs with the operator token op
func apply(op lexer.Token, lhs, rhs int64) (int64, error) {
	overflow := func() error {
		return &EvalError{Kind: Overflow, Pos: op.Pos, Op: op.Type, Left: lhs, Right: rhs}
	}

	switch op.Type {
	case lexer.TokenPlus:
		r := lhs + rhs
		if (lhs^r)&(rhs^r) < 0 {
			return 0, overflow()
		}
		return r, nil
	case lexer.TokenMinus:
		r := lhs - rhs
		if (lhs^rhs)&(lhs^r) < 0 {
			return 0, overflow()
		}
		return r, nil
	case lexer.TokenMult:
		if lhs == 0 || rhs == 0 {
			return 0, nil
		}
		r := lhs * rhs
		if r/rhs != lhs || (lhs == -1 && rhs == math.MinInt64) || (rhs == -1 && lhs == math.MinInt64) {
			return 0, overflow()
		}
		return r, nil
	case lexer.TokenDiv:
		if rhs == 0 {
			return 0, &EvalError{Kind: DivisionByZero, Pos: op.Pos}
		}
		if lhs == math.MinInt64 && rhs == -1 {
			return 0, overflow()
		}
		return lhs / rhs, nil
	default:
		return 0, &EvalError{Kind: UnexpectedToken, Pos: op.Pos, Expected: lexer.TokenPlus, Actual: op}
	}
}

// checkEnd rejects leftover tokens in strict mode
func (e *Evaluator) checkEnd() error {
	if !e.options.Strict {
		return nil
	}
	if tok, ok := e.peek(); ok {
		return &EvalError{Kind: TrailingInput, Pos: tok.Pos, Actual: tok}
	}
	return nil
}

// Token cursor helpers

func (e *Evaluator) peekAhead(n int) (lexer.Token, bool) {
	i := e.cursor + n
	if i >= len(e.tokens) {
		return lexer.Token{}, false
	}
	return e.tokens[i], true
}

func (e *Evaluator) peek() (lexer.Token, bool) {
	return e.peekAhead(0)
}

func (e *Evaluator) next() (lexer.Token, error) {
	tok, ok := e.peek()
	if !ok {
		return lexer.Token{}, &EvalError{Kind: UnexpectedEndOfInput, Pos: e.end}
	}
	e.cursor++
	return tok, nil
}

// consume requires the next token to be of type tt
func (e *Evaluator) consume(tt lexer.TokenType) error {
	tok, err := e.next()
	if err != nil {
		return err
	}
	if tok.Type != tt {
		return &EvalError{Kind: UnexpectedToken, Pos: tok.Pos, Expected: tt, Actual: tok}
	}
	return nil
}

func (e *Evaluator) ident() (string, error) {
	tok, err := e.next()
	if err != nil {
		return "", err
	}
	if tok.Type != lexer.TokenIdent {
		return "", &EvalError{Kind: UnexpectedToken, Pos: tok.Pos, Expected: lexer.TokenIdent, Actual: tok}
	}
	return tok.Text, nil
}
