// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     repl
// Description: Line driver reading expressions from a stream
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/session"
	"github.com/msto63/mcalc/pkg/core/config"
)

// Options configures the line driver
type Options struct {
	Session *session.Session
	Config  *config.Config
	Logger  *mdwlog.Logger
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
}

// REPL reads one line at a time, evaluates it and prints the outcome.
// Results go to Out, errors to Err.
type REPL struct {
	session *session.Session
	config  *config.Config
	logger  *mdwlog.Logger
	in      *bufio.Reader
	out     io.Writer
	err     io.Writer
	errText *color.Color
}

// New creates a line driver
func New(opts Options) *REPL {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	errText := color.New(color.FgRed)
	if !cfg.REPL.Color {
		errText.DisableColor()
	}

	return &REPL{
		session: opts.Session,
		config:  cfg,
		logger:  logger.WithField("component", "repl"),
		in:      bufio.NewReader(opts.In),
		out:     opts.Out,
		err:     opts.Err,
		errText: errText,
	}
}

// Run loops until EOF, an exit command or ctx is done. On EOF a newline is
// printed so the shell prompt starts on a fresh line.
func (r *REPL) Run(ctx context.Context) error {
	r.logger.Debug("repl started", mdwlog.Fields{"session": r.session.ID()})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.out, r.config.REPL.Prompt)

		raw, readErr := r.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if errors.Is(readErr, io.EOF) && raw == "" {
			fmt.Fprintln(r.out)
			r.logger.Debug("repl reached end of input")
			return nil
		}

		// A final line without newline is still evaluated; the next read
		// then hits EOF.
		if done := r.handle(ctx, strings.TrimSpace(raw)); done {
			return nil
		}
	}
}

// handle processes one trimmed line and reports whether to stop
func (r *REPL) handle(ctx context.Context, line string) bool {
	switch {
	case line == "":
		return false

	case r.config.IsExitCommand(line):
		r.logger.Debug("repl exit requested", mdwlog.Fields{"command": line})
		return true

	case IsMeta(line):
		lines, err := RunMeta(ctx, r.session, line)
		if err != nil {
			r.printError(err)
			return false
		}
		for _, l := range lines {
			fmt.Fprintln(r.out, l)
		}
		return false

	default:
		outcome := r.session.Evaluate(ctx, line)
		if outcome.Failed() {
			r.printError(outcome.Err)
			return false
		}
		fmt.Fprintln(r.out, outcome.Value)
		return false
	}
}

func (r *REPL) printError(err error) {
	r.errText.Fprintln(r.err, err.Error())
}
