// File: doc.go
// Title: Calculator Lexer Package Documentation
// Description: Lexical analysis for calculator input lines.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial lexer

/*
Package lexer turns one line of calculator input into tokens.

The token set is closed: the single-character symbols = + - * / ( ),
identifiers and base-10 integer literals that fit into an int64. An
identifier starts with a character of the Unicode Alphabetic property and
continues with alphabetic characters, numbers or underscores. Whitespace
separates tokens and is otherwise ignored.

	tokens, err := lexer.Tokenize("a1_b = 42")
	// [Ident("a1_b") Equals Value(42)]

Every failure is a *LexError carrying its Kind and the byte position of
the offending input.
*/
package lexer
