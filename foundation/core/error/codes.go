// File: codes.go
// Title: Error Code Definitions
// Description: Standard error codes used across mCalc. Codes classify an
//              error independently of its message so callers can branch
//              on them and loggers can pick a level.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-12 v0.1.0: Initial code set
// - 2026-10-19 v0.2.0: Calculator syntax and evaluation codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Calculator
	CodeCalcSyntax     Code = "CALC_SYNTAX"
	CodeCalcEvaluation Code = "CALC_EVALUATION"
	CodeCalcLimit      Code = "CALC_LIMIT"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsClientError reports whether the code describes bad input rather than
// a fault of the program or its environment.
func (c Code) IsClientError() bool {
	switch c {
	case CodeInvalidInput, CodeNotFound, CodeCalcSyntax, CodeCalcEvaluation, CodeCalcLimit:
		return true
	default:
		return false
	}
}

// DefaultSeverity returns the severity an error with this code gets when
// none was set explicitly.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case CodeCalcSyntax, CodeCalcEvaluation, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeCalcLimit, CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return SeverityMedium
	case CodeDatabaseError:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
