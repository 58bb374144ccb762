// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     session
// Description: Evaluation session shared by the line driver, the calc shell
//              and the eval command
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package session

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/msto63/mcalc/foundation/calc/evaluator"
	"github.com/msto63/mcalc/foundation/calc/lexer"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/history"
	"github.com/msto63/mcalc/pkg/core/config"
)

// Options configures a session
type Options struct {
	Config *config.Config
	Logger *mdwlog.Logger
	Store  history.Store
}

// Session owns one evaluator and its history identity
type Session struct {
	id     string
	eval   *evaluator.Evaluator
	store  history.Store
	logger *mdwlog.Logger
}

// Outcome is the result of evaluating one line
type Outcome struct {
	Input string
	Value int64
	Err   error
}

// Failed reports whether the line produced an error
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Kind returns the error kind name, or "" for a successful line
func (o Outcome) Kind() string {
	var lexErr *lexer.LexError
	if errors.As(o.Err, &lexErr) {
		return lexErr.Kind.String()
	}
	var evalErr *evaluator.EvalError
	if errors.As(o.Err, &evalErr) {
		return evalErr.Kind.String()
	}
	return ""
}

// Binding is one entry of the variable table
type Binding struct {
	Name  string
	Value int64
}

// New creates a session with a fresh variable table
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	store := opts.Store
	if store == nil {
		store = history.NopStore{}
	}

	id := uuid.New().String()
	logger = logger.WithCorrelationID(id).WithField("component", "session")

	return &Session{
		id: id,
		eval: evaluator.New(evaluator.Options{
			Logger:         logger,
			MaxDepth:       cfg.Evaluator.MaxDepth,
			MaxInputLength: cfg.Evaluator.MaxInputLength,
			Strict:         cfg.Evaluator.Strict,
			Stdout:         io.Discard,
			Stderr:         io.Discard,
		}),
		store:  store,
		logger: logger,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Evaluate runs one line through the evaluator and records it in the
// history. A history failure is logged and never changes the outcome.
func (s *Session) Evaluate(ctx context.Context, line string) Outcome {
	timer := s.logger.StartTimer("evaluate").WithField("input", line)

	value, err := s.eval.Eval(line)
	outcome := Outcome{Input: line, Value: value, Err: err}

	entry := &history.Entry{SessionID: s.id, Input: line, Result: value}
	if err != nil {
		entry.Error = err.Error()
		entry.Kind = outcome.Kind()
		timer.WithField("kind", entry.Kind).WithField("error_code", mdwerror.GetCode(err).String())
	} else {
		timer.WithField("result", value)
	}
	timer.Stop()

	if recErr := s.store.Record(ctx, entry); recErr != nil {
		s.logger.LogError(recErr)
	}
	return outcome
}

// Vars lists the variable table sorted by name
func (s *Session) Vars() []Binding {
	vars := s.eval.Vars()
	names := vars.Names()
	out := make([]Binding, 0, len(names))
	for _, name := range names {
		value, _ := vars.Get(name)
		out = append(out, Binding{Name: name, Value: value})
	}
	return out
}

// History returns this session's recorded lines
func (s *Session) History(ctx context.Context) ([]*history.Entry, error) {
	return s.store.BySession(ctx, s.id)
}

// Close releases the history store
func (s *Session) Close() error {
	return s.store.Close()
}
