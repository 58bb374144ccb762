// File: evaluator_test.go
// Title: Calculator Evaluator Unit Tests
// Description: Tests for arithmetic, precedence, assignment, the variable
//              table, every evaluation error kind and the strict and
//              nesting options.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.1.0: Initial evaluator test suite

package evaluator

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/msto63/mcalc/foundation/calc/lexer"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
)

func newTestEvaluator(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = mdwlog.NewNop()
	}
	return New(opts)
}

func requireKind(t *testing.T, err error, want ErrorKind) *EvalError {
	t.Helper()
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v (%T), want *EvalError of kind %v", err, err, want)
	}
	if evalErr.Kind != want {
		t.Fatalf("Kind = %v, want %v (error: %v)", evalErr.Kind, want, err)
	}
	return evalErr
}

func TestEvaluator_Arithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{"1 + 2", 3},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"3 / 2", 1},
		{"(0 - 7) / 2", -3},
		{"10 - 4 - 3", 3},
		{"100 / 10 / 5", 2},
		{"2 * 3 + 4 * 5", 26},
		{"2 * (3 + 4) * 5", 70},
		{"((((7))))", 7},
		{"8 - 2 * 3 + 1", 3},
		{"1 - (2 - 3)", 2},
		{"9223372036854775807", 9223372036854775807},
		{"0 - 9223372036854775807 - 1", -9223372036854775808},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			eval := newTestEvaluator(Options{})
			got, err := eval.Eval(tt.input)
			if err != nil {
				t.Fatalf("Eval(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluator_Assignment(t *testing.T) {
	eval := newTestEvaluator(Options{})

	steps := []struct {
		input string
		want  int64
	}{
		{"x = 5", 5},
		{"x", 5},
		{"x = 10", 10},
		{"x + 1", 11},
		{"y = x * 2 + 1", 21},
		{"x = x + y", 31},
		{"x", 31},
	}

	for _, step := range steps {
		got, err := eval.Eval(step.input)
		if err != nil {
			t.Fatalf("Eval(%q) unexpected error: %v", step.input, err)
		}
		if got != step.want {
			t.Fatalf("Eval(%q) = %d, want %d", step.input, got, step.want)
		}
	}

	want := map[string]int64{"x": 31, "y": 21}
	if got := eval.Vars().Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vars().Snapshot() = %v, want %v", got, want)
	}
}

func TestEvaluator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ErrorKind
		wantPos  int
		check    func(t *testing.T, e *EvalError)
	}{
		{
			name:     "Division by zero",
			input:    "10 / 0",
			wantKind: DivisionByZero,
			wantPos:  3,
		},
		{
			name:     "Division by zero subexpression",
			input:    "1 + 4 / (2 - 2)",
			wantKind: DivisionByZero,
			wantPos:  6,
		},
		{
			name:     "Unknown identifier",
			input:    "y + 1",
			wantKind: UnknownIdentifier,
			wantPos:  0,
			check: func(t *testing.T, e *EvalError) {
				if e.Name != "y" {
					t.Errorf("Name = %q, want y", e.Name)
				}
			},
		},
		{
			name:     "Unbalanced parenthesis at end",
			input:    "(1 + 2",
			wantKind: UnexpectedEndOfInput,
			wantPos:  6,
		},
		{
			name:     "Unbalanced parenthesis before value",
			input:    "(1 + 2 3",
			wantKind: UnexpectedToken,
			wantPos:  7,
			check: func(t *testing.T, e *EvalError) {
				if e.Expected != lexer.TokenRightParen {
					t.Errorf("Expected = %v, want RParen", e.Expected)
				}
				if !e.Actual.Equal(lexer.Value(3)) {
					t.Errorf("Actual = %v, want Value(3)", e.Actual)
				}
			},
		},
		{
			name:     "Unary minus is not supported",
			input:    "-5",
			wantKind: ExpectedFactor,
			wantPos:  0,
			check: func(t *testing.T, e *EvalError) {
				if e.Actual.Type != lexer.TokenMinus {
					t.Errorf("Actual = %v, want OpMinus", e.Actual)
				}
			},
		},
		{
			name:     "Closing parenthesis first",
			input:    ")",
			wantKind: ExpectedFactor,
			wantPos:  0,
		},
		{
			name:     "Dangling operator",
			input:    "1 +",
			wantKind: UnexpectedEndOfInput,
			wantPos:  3,
		},
		{
			name:     "Empty line",
			input:    "",
			wantKind: UnexpectedEndOfInput,
			wantPos:  0,
		},
		{
			name:     "Assignment to literal",
			input:    "5 = 3",
			wantKind: UnexpectedToken,
			wantPos:  0,
			check: func(t *testing.T, e *EvalError) {
				if e.Expected != lexer.TokenIdent {
					t.Errorf("Expected = %v, want Ident", e.Expected)
				}
			},
		},
		{
			name:     "Assignment without value",
			input:    "x =",
			wantKind: UnexpectedEndOfInput,
			wantPos:  3,
		},
		{
			name:     "Double equals",
			input:    "x = = 1",
			wantKind: ExpectedFactor,
			wantPos:  4,
		},
		{
			name:     "Addition overflow",
			input:    "9223372036854775807 + 1",
			wantKind: Overflow,
			wantPos:  20,
			check: func(t *testing.T, e *EvalError) {
				if e.Op != lexer.TokenPlus || e.Left != 9223372036854775807 || e.Right != 1 {
					t.Errorf("overflow operands = %d %v %d", e.Left, e.Op, e.Right)
				}
			},
		},
		{
			name:     "Subtraction overflow",
			input:    "0 - 9223372036854775807 - 2",
			wantKind: Overflow,
			wantPos:  24,
		},
		{
			name:     "Multiplication overflow",
			input:    "4611686018427387904 * 2",
			wantKind: Overflow,
			wantPos:  20,
		},
		{
			name:     "Division overflow",
			input:    "(0 - 9223372036854775807 - 1) / (0 - 1)",
			wantKind: Overflow,
			wantPos:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := newTestEvaluator(Options{})
			got, err := eval.Eval(tt.input)
			if err == nil {
				t.Fatalf("Eval(%q) = %d, expected error", tt.input, got)
			}
			e := requireKind(t, err, tt.wantKind)
			if e.Pos != tt.wantPos {
				t.Errorf("Pos = %d, want %d", e.Pos, tt.wantPos)
			}
			if tt.check != nil {
				tt.check(t, e)
			}
			if eval.Vars().Len() != 0 {
				t.Errorf("variable table changed on error: %v", eval.Vars().Snapshot())
			}
		})
	}
}

func TestEvaluator_ErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"y + 1", "unknown identifier 'y' at position 0"},
		{"(1 + 2 3", "expected RParen, but got Value(3) at position 7"},
		{"-5", "expected a factor, but got OpMinus at position 0"},
		{"10 / 0", "division by zero at position 3"},
		{"(1", "unexpectedly reached the end of the tokens at position 2"},
		{"9223372036854775807 * 2", "integer overflow in 9223372036854775807 * 2 at position 20"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := newTestEvaluator(Options{}).Eval(tt.input)
			if err == nil || err.Error() != tt.want {
				t.Errorf("Eval(%q) error = %v, want %q", tt.input, err, tt.want)
			}
		})
	}
}

func TestEvaluator_FailedAssignmentKeepsTable(t *testing.T) {
	eval := newTestEvaluator(Options{})
	if _, err := eval.Eval("x = 5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, input := range []string{"x = 10 / 0", "x = y", "x = (1", "x = 1 $ 2"} {
		if _, err := eval.Eval(input); err == nil {
			t.Fatalf("Eval(%q) expected error", input)
		}
		if v, _ := eval.Vars().Get("x"); v != 5 {
			t.Fatalf("after %q x = %d, want 5", input, v)
		}
	}
	if eval.Vars().Len() != 1 {
		t.Errorf("Vars().Len() = %d, want 1", eval.Vars().Len())
	}
}

func TestEvaluator_LexErrorsPropagate(t *testing.T) {
	eval := newTestEvaluator(Options{})
	if _, err := eval.Eval("1 + 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := eval.Tokens()

	_, err := eval.Eval("1 # 2")
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error = %v (%T), want *lexer.LexError", err, err)
	}
	if lexErr.Kind != lexer.UnexpectedCharacter || lexErr.Pos != 2 {
		t.Errorf("LexError = %+v", lexErr)
	}
	if !lexer.EqualTokens(eval.Tokens(), before) {
		t.Errorf("token sequence replaced after lex error: %v", eval.Tokens())
	}
}

func TestEvaluator_TokensReplacedPerLine(t *testing.T) {
	eval := newTestEvaluator(Options{})
	if eval.Tokens() != nil {
		t.Fatal("Tokens() should be nil before the first line")
	}

	eval.Eval("1 + 2 + 3")
	eval.Eval("4")

	want := []lexer.Token{lexer.Value(4)}
	if got := eval.Tokens(); !lexer.EqualTokens(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestEvaluator_Idempotence(t *testing.T) {
	eval := newTestEvaluator(Options{})
	eval.Eval("a = 6")
	eval.Eval("b = 7")
	before := eval.Vars().Snapshot()

	first, err := eval.Eval("a * b - (a + b) / 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := eval.Eval("a * b - (a + b) / 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second || first != 36 {
		t.Errorf("results = %d, %d, want 36 twice", first, second)
	}
	if after := eval.Vars().Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("variable table changed: %v -> %v", before, after)
	}
}

func TestEvaluator_TrailingTokens(t *testing.T) {
	loose := newTestEvaluator(Options{})
	got, err := loose.Eval("1 + 2 3")
	if err != nil {
		t.Fatalf("non-strict Eval() unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("non-strict Eval(\"1 + 2 3\") = %d, want 3", got)
	}

	if got, _ := loose.Eval("x = 5 6"); got != 5 {
		t.Errorf("non-strict assignment = %d, want 5", got)
	}
	if v, ok := loose.Vars().Get("x"); !ok || v != 5 {
		t.Errorf("x = %d (%v), want 5", v, ok)
	}

	strict := newTestEvaluator(Options{Strict: true})
	_, err = strict.Eval("1 + 2 3")
	e := requireKind(t, err, TrailingInput)
	if e.Pos != 6 || !e.Actual.Equal(lexer.Value(3)) {
		t.Errorf("TrailingInput = %+v", e)
	}

	_, err = strict.Eval("x = 5 )")
	requireKind(t, err, TrailingInput)
	if _, ok := strict.Vars().Get("x"); ok {
		t.Error("strict mode should not store an assignment with trailing input")
	}

	if got, err := strict.Eval("x = (5)"); err != nil || got != 5 {
		t.Errorf("strict Eval(\"x = (5)\") = %d, %v", got, err)
	}
}

func TestEvaluator_NestingLimit(t *testing.T) {
	eval := newTestEvaluator(Options{MaxDepth: 3})

	if got, err := eval.Eval("(((1)))"); err != nil || got != 1 {
		t.Errorf("Eval at limit = %d, %v", got, err)
	}

	_, err := eval.Eval("((((1))))")
	e := requireKind(t, err, NestingTooDeep)
	if e.Limit != 3 || e.Pos != 3 {
		t.Errorf("NestingTooDeep = %+v", e)
	}

	// Sibling groups do not add up.
	if got, err := eval.Eval("(((1))) + (((2)))"); err != nil || got != 3 {
		t.Errorf("sibling groups = %d, %v", got, err)
	}

	deep := strings.Repeat("(", 10000) + "1" + strings.Repeat(")", 10000)
	_, err = newTestEvaluator(Options{MaxInputLength: 1 << 20}).Eval(deep)
	requireKind(t, err, NestingTooDeep)
}

func TestEvaluator_InputLimit(t *testing.T) {
	eval := newTestEvaluator(Options{MaxInputLength: 8})

	if _, err := eval.Eval("1 + 2 + 3"); err == nil {
		t.Fatal("expected InputTooLong")
	} else {
		e := requireKind(t, err, InputTooLong)
		if e.Length != 9 || e.Limit != 8 {
			t.Errorf("InputTooLong = %+v", e)
		}
		if err.Error() != "input exceeds maximum length: 9 > 8" {
			t.Errorf("Error() = %q", err.Error())
		}
	}

	if got, err := eval.Eval("1+2+3"); err != nil || got != 6 {
		t.Errorf("short input = %d, %v", got, err)
	}
}

func TestEvaluator_SharedVars(t *testing.T) {
	vars := NewVars()
	a := newTestEvaluator(Options{Vars: vars})
	b := newTestEvaluator(Options{Vars: vars})
	c := newTestEvaluator(Options{})

	a.Eval("shared = 9")

	if got, err := b.Eval("shared + 1"); err != nil || got != 10 {
		t.Errorf("b sees shared = %d, %v", got, err)
	}
	_, err := c.Eval("shared")
	requireKind(t, err, UnknownIdentifier)

	if a.Vars() != vars {
		t.Error("Vars() should return the injected table")
	}
}

func TestEvaluator_Run(t *testing.T) {
	var stdout, stderr bytes.Buffer
	eval := newTestEvaluator(Options{Stdout: &stdout, Stderr: &stderr})

	eval.Run("x = 5")
	eval.Run("x * 2")
	eval.Run("z")
	eval.Run("1 @ 1")

	if stdout.String() != "5\n10\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "5\n10\n")
	}
	wantErr := "unknown identifier 'z' at position 0\nunexpected character '@' at position 2\n"
	if stderr.String() != wantErr {
		t.Errorf("stderr = %q, want %q", stderr.String(), wantErr)
	}
}

func TestEvaluator_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatLogfmt, Output: &buf})
	eval := New(Options{Logger: logger})

	eval.Eval("2 * 21")
	eval.Eval("q")

	out := buf.String()
	for _, want := range []string{`message="line evaluated"`, "result=42", `message="line rejected"`, `kind="UnknownIdentifier"`, `component="calc-evaluator"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestEvalError_Code(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want mdwerror.Code
	}{
		{UnexpectedToken, mdwerror.CodeCalcSyntax},
		{UnexpectedEndOfInput, mdwerror.CodeCalcSyntax},
		{ExpectedFactor, mdwerror.CodeCalcSyntax},
		{TrailingInput, mdwerror.CodeCalcSyntax},
		{UnknownIdentifier, mdwerror.CodeCalcEvaluation},
		{DivisionByZero, mdwerror.CodeCalcEvaluation},
		{Overflow, mdwerror.CodeCalcEvaluation},
		{NestingTooDeep, mdwerror.CodeCalcLimit},
		{InputTooLong, mdwerror.CodeCalcLimit},
	}
	for _, tt := range tests {
		err := fmt.Errorf("line 1: %w", &EvalError{Kind: tt.kind, Pos: -1})
		if got := mdwerror.GetCode(err); got != tt.want {
			t.Errorf("GetCode(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

// expr is a randomly generated expression with its expected value
type expr struct {
	text  string
	value int64
	err   ErrorKind
	fails bool
}

func genExpr(r *rand.Rand, depth int) expr {
	if depth == 0 || r.Intn(3) == 0 {
		n := int64(r.Intn(10))
		return expr{text: fmt.Sprint(n), value: n}
	}

	lhs := genExpr(r, depth-1)
	rhs := genExpr(r, depth-1)
	ops := []string{"+", "-", "*", "/"}
	op := ops[r.Intn(len(ops))]
	text := fmt.Sprintf("(%s %s %s)", lhs.text, op, rhs.text)

	if lhs.fails {
		return expr{text: text, fails: true, err: lhs.err}
	}
	if rhs.fails {
		return expr{text: text, fails: true, err: rhs.err}
	}

	switch op {
	case "+":
		return expr{text: text, value: lhs.value + rhs.value}
	case "-":
		return expr{text: text, value: lhs.value - rhs.value}
	case "*":
		return expr{text: text, value: lhs.value * rhs.value}
	default:
		if rhs.value == 0 {
			return expr{text: text, fails: true, err: DivisionByZero}
		}
		return expr{text: text, value: lhs.value / rhs.value}
	}
}

func TestEvaluator_RandomExpressions(t *testing.T) {
	r := rand.New(rand.NewSource(20261015))
	eval := newTestEvaluator(Options{Strict: true})

	for i := 0; i < 500; i++ {
		e := genExpr(r, 4)
		got, err := eval.Eval(e.text)

		if e.fails {
			var evalErr *EvalError
			if !errors.As(err, &evalErr) || evalErr.Kind != e.err {
				t.Fatalf("Eval(%q) = %d, %v; want %v", e.text, got, err, e.err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Eval(%q) unexpected error: %v", e.text, err)
		}
		if got != e.value {
			t.Fatalf("Eval(%q) = %d, want %d", e.text, got, e.value)
		}
	}
}
