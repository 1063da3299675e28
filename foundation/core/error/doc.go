// Package error provides the structured error type used across numerik.
//
// Package: error
// Title: Structured Error Handling
// Description: Errors carry a Code, a Severity, key-value details and the
//              operation that failed. The calculation core uses them only for
//              contract violations; unparseable input is never an error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Calculation codes, errors.As based helpers
//
// Usage:
//
//	err := mdwerror.New("journal unavailable").
//		WithCode(mdwerror.CodeDatabaseError).
//		WithDetail("path", path)
//
//	if mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
//		// degrade to in-memory operation
//	}
package error
