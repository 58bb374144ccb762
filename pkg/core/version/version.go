// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for mCalc components
const (
	// Application version
	App = "0.1.0"

	// Component versions
	Evaluator = "0.1.0"
	History   = "0.1.0"
	Shell     = "0.1.0"
)

// Set by the linker: -ldflags "-X github.com/msto63/mcalc/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "evaluator":
		return Evaluator
	case "history":
		return History
	case "shell":
		return Shell
	default:
		return App
	}
}

// String returns the full version line printed by `mcalc version`
func String() string {
	return fmt.Sprintf("mcalc %s (commit %s, built %s)", App, Commit, BuildDate)
}
