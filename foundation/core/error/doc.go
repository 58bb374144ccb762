// Package error provides coded errors for mCalc infrastructure.
//
// Package: error
// Title: mCalc Error Handling
// Description: Structured errors with a code, a severity and free-form
//              details. Used for everything around the calculator core
//              (configuration, history storage) and as the common code
//              vocabulary that the core's own error types report.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-12
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-12 v0.1.0: Coded errors with severity and details
// - 2026-10-19 v0.2.0: Coder interface for domain error types
//
// Usage:
//
//	import mdwerror "github.com/msto63/mcalc/foundation/core/error"
//
//	err := mdwerror.Wrap(cause, "failed to open history").
//		WithCode(mdwerror.CodeDatabaseError).
//		WithDetail("path", path)
//
//	if mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
//		// ...
//	}
//
// Any error type may take part in code lookups by implementing Coder.
package error
