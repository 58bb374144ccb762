// File: lexer.go
// Title: Calculator Lexical Analyzer
// Description: Scans a line of text rune by rune and produces the token
//              sequence consumed by the evaluator.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-14
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-14 v0.1.0: Initial lexer implementation
// - 2026-10-19 v0.1.1: Identifiers use the Unicode Alphabetic property

package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Lexer performs lexical analysis of one input line
type Lexer struct {
	input  string
	cursor int // byte offset of the next unread rune
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize is a convenience function that tokenizes input in one call
func Tokenize(input string) ([]Token, error) {
	return New(input).Run()
}

// Run scans the whole input. The returned slice is never nil on success.
func (l *Lexer) Run() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input)/2+1)

	for {
		l.skipWhitespace()
		if l.cursor >= len(l.input) {
			return tokens, nil
		}

		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// peek decodes the rune at the cursor. size is 0 at the end of the input;
// invalid UTF-8 yields utf8.RuneError with size 1.
func (l *Lexer) peek() (r rune, size int) {
	if l.cursor >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[l.cursor:])
}

func isMalformed(r rune, size int) bool {
	return r == utf8.RuneError && size <= 1
}

// isAlphabetic reports whether r has the Unicode Alphabetic property:
// letters, letter numbers such as Ⅻ and Other_Alphabetic marks.
func isAlphabetic(r rune) bool {
	return unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_Alphabetic)
}

// nextToken reads exactly one token starting at the cursor
func (l *Lexer) nextToken() (Token, error) {
	r, size := l.peek()
	if size == 0 {
		return Token{}, &LexError{Kind: UnexpectedEnd, Pos: l.cursor}
	}
	if isMalformed(r, size) {
		return Token{}, &LexError{Kind: MalformedContent, Pos: l.cursor}
	}

	switch {
	case isAlphabetic(r):
		return l.readIdent(), nil
	case unicode.IsNumber(r):
		return l.readNumber()
	}

	tt, ok := symbols[r]
	if !ok {
		return Token{}, &LexError{Kind: UnexpectedCharacter, Pos: l.cursor, Char: r}
	}
	tok := Token{Type: tt, Text: string(r), Pos: l.cursor}
	l.cursor += size
	return tok, nil
}

func (l *Lexer) readIdent() Token {
	start := l.cursor
	l.advanceWhile(func(r rune) bool {
		return isAlphabetic(r) || unicode.IsNumber(r) || r == '_'
	})
	return Token{Type: TokenIdent, Text: l.input[start:l.cursor], Pos: start}
}

func (l *Lexer) readNumber() (Token, error) {
	start := l.cursor
	l.advanceWhile(unicode.IsNumber)
	literal := l.input[start:l.cursor]

	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		next, size := l.peek()
		return Token{}, &LexError{
			Kind:    InvalidNumber,
			Pos:     start,
			Char:    next,
			Literal: literal,
			AtEnd:   size == 0,
		}
	}
	return Token{Type: TokenValue, Text: literal, Value: n, Pos: start}, nil
}

func (l *Lexer) skipWhitespace() {
	l.advanceWhile(unicode.IsSpace)
}

// advanceWhile moves the cursor past the maximal run of runes matching
// pred. Malformed bytes never match.
func (l *Lexer) advanceWhile(pred func(rune) bool) {
	for {
		r, size := l.peek()
		if size == 0 || isMalformed(r, size) || !pred(r) {
			return
		}
		l.cursor += size
	}
}
