// File: doc.go
// Title: Log Package Documentation
// Description: Structured logging for mCalc with levels, contextual
//              fields, several output formats and operation timers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-12 v0.1.0: Initial structured logger
// - 2026-10-19 v0.2.0: Coded error support in LogError

/*
Package log provides structured logging.

A Logger is immutable from the caller's point of view: every With* method
returns a configured copy, so a component can derive its own logger without
affecting others.

	logger := log.NewWithConfig(log.Config{
		Level:  log.LevelDebug,
		Format: log.FormatText,
		Output: os.Stderr,
		Name:   "mcalc",
	})

	logger.WithField("component", "evaluator").Debug("evaluated", log.Fields{
		"input":  "1 + 2",
		"result": 3,
	})

	timer := logger.StartTimer("evaluate")
	defer timer.Stop()

Formats: json (default), text, console (text with ANSI colors) and logfmt.
*/
package log
