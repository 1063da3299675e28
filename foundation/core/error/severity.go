// File: severity.go
// Title: Error Severity Levels
// Description: Severity ranks an error for logging and alerting. The default
//              severity of a code is derived from its HTTP status and
//              category, so adding a code needs no second table.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.3.0: Severity derived from status and category

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a caller mistake, logged at info
	SeverityLow Severity = iota
	// SeverityMedium is a rejected calculation or an unclassified failure
	SeverityMedium
	// SeverityHigh is a failing journal, service or environment
	SeverityHigh
	// SeverityCritical is journal data that can no longer be trusted
	SeverityCritical
)

var severityNames = [...]string{"low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < SeverityLow || s > SeverityCritical {
		return "unknown"
	}
	return severityNames[s]
}

// ShouldAlert reports whether s needs operator attention
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode returns the default severity of code. Caller errors
// (400 and 404) are low and storage or service failures high.
func GetSeverityFromCode(code Code) Severity {
	switch status := code.HTTPStatus(); {
	case code == CodeDataCorruption:
		return SeverityCritical
	case code.Category() == "database", code.Category() == "service", code == CodeEnvironmentError:
		return SeverityHigh
	case code == CodeInvalidConfig, status == 400, status == 404:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
