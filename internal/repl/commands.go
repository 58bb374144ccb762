// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     repl
// Description: Meta commands shared by the line driver and the calc shell
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	"github.com/msto63/mcalc/internal/session"
)

// MetaPrefix starts a driver command. ':' is not a token, so meta
// commands never collide with expressions.
const MetaPrefix = ":"

// HelpText describes the input language and the meta commands
const HelpText = `Enter an expression or an assignment:
  1 + 2 * 3        integer arithmetic with + - * / and parentheses
  x = 5            bind a variable, the value is printed
  x * 2            use a bound variable
Division truncates toward zero. There is no unary minus: write 0 - 5.

Commands:
  :vars            list variables
  :history         list the lines evaluated in this session
  :help            show this help
  exit, quit, q    leave`

// IsMeta reports whether line is a meta command
func IsMeta(line string) bool {
	return strings.HasPrefix(line, MetaPrefix)
}

// RunMeta executes a meta command and returns its output lines
func RunMeta(ctx context.Context, s *session.Session, line string) ([]string, error) {
	name := strings.TrimSpace(strings.TrimPrefix(line, MetaPrefix))

	switch name {
	case "vars":
		vars := s.Vars()
		if len(vars) == 0 {
			return []string{"no variables"}, nil
		}
		out := make([]string, 0, len(vars))
		for _, b := range vars {
			out = append(out, fmt.Sprintf("%s = %d", b.Name, b.Value))
		}
		return out, nil

	case "history":
		entries, err := s.History(ctx)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return []string{"no history"}, nil
		}
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Failed() {
				out = append(out, fmt.Sprintf("%s  ! %s", e.Input, e.Error))
			} else {
				out = append(out, fmt.Sprintf("%s  = %d", e.Input, e.Result))
			}
		}
		return out, nil

	case "help":
		return strings.Split(HelpText, "\n"), nil

	default:
		return nil, mdwerror.Newf("unknown command '%s%s' (try :help)", MetaPrefix, name).
			WithCode(mdwerror.CodeInvalidInput)
	}
}
