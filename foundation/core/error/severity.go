// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to prioritise errors. Loggers map
//              severities onto log levels.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a recoverable problem caused by input, e.g. a typo in
	// an expression.
	SeverityLow Severity = iota

	// SeverityMedium affects a feature but the program keeps working.
	SeverityMedium

	// SeverityHigh disables a component, e.g. the history store.
	SeverityHigh

	// SeverityCritical leaves the program unusable.
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
