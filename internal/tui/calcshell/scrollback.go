// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     calcshell
// Description: Bounded scrollback of shell lines
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package calcshell

import (
	"github.com/edwingeng/deque"
)

// LineKind selects how a scrollback line is rendered
type LineKind int

const (
	LineInput LineKind = iota
	LineResult
	LineError
	LineInfo
)

// Line is one entry of the scrollback
type Line struct {
	Kind LineKind
	Text string
}

// scrollback keeps the most recent lines up to a limit
type scrollback struct {
	lines deque.Deque
	limit int
}

func newScrollback(limit int) *scrollback {
	if limit <= 0 {
		limit = 500
	}
	return &scrollback{lines: deque.NewDeque(), limit: limit}
}

// Push appends a line and drops the oldest one beyond the limit
func (s *scrollback) Push(line Line) {
	s.lines.PushBack(line)
	for s.lines.Len() > s.limit {
		s.lines.PopFront()
	}
}

// Len returns the number of stored lines
func (s *scrollback) Len() int {
	return s.lines.Len()
}

// Clear drops all lines
func (s *scrollback) Clear() {
	s.lines = deque.NewDeque()
}

// Lines returns a copy of the stored lines, oldest first. It does not
// modify the ring and is safe to call from View.
func (s *scrollback) Lines() []Line {
	out := make([]Line, 0, s.lines.Len())
	s.lines.Range(func(_ int, v deque.Elem) bool {
		out = append(out, v.(Line))
		return true
	})
	return out
}
