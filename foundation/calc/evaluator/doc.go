// File: doc.go
// Title: Calculator Evaluator Package Documentation
// Description: Recursive descent evaluation of calculator lines.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.1.0: Initial evaluator

/*
Package evaluator parses and computes calculator lines in a single pass.

Grammar, lowest precedence first:

	assign := IDENT '=' calc | calc
	calc   := term (('+'|'-') term)*
	term   := factor (('*'|'/') factor)*
	factor := VALUE | IDENT | '(' calc ')'

A line whose second token is '=' is an assignment; everything else is a
bare expression. Operators are left-associative and division truncates
toward zero. Assignments store their value in the variable table and
evaluate to it.

An Evaluator is long-lived: it keeps its variable table across lines and
replaces its token sequence on every call. The table can be shared by
injecting it through Options.Vars.

	eval := evaluator.New(evaluator.Options{})
	eval.Eval("x = 5")     // 5
	eval.Eval("x * 2 + 1") // 11

Tokens left over after a complete expression are ignored unless
Options.Strict is set, so "1 + 2 3" evaluates to 3.
*/
package evaluator
