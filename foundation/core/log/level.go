// File: level.go
// Title: Log Levels
// Description: The four filtering levels plus the audit level used for
//              journal writes, and their parsing from configuration.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.3.0: Dropped trace and fatal, table-driven names

package log

import (
	"fmt"
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelAudit records journal writes and passes every level filter
	LevelAudit

	levelOff
)

var levelNames = [...]struct{ name, short string }{
	LevelDebug: {"debug", "DBG"},
	LevelInfo:  {"info", "INF"},
	LevelWarn:  {"warn", "WRN"},
	LevelError: {"error", "ERR"},
	LevelAudit: {"audit", "AUD"},
}

func (l Level) valid() bool { return l >= LevelDebug && l < levelOff }

func (l Level) String() string {
	if !l.valid() {
		return "unknown"
	}
	return levelNames[l].name
}

// ShortString returns the three letter form used by console output
func (l Level) ShortString() string {
	if !l.valid() {
		return "???"
	}
	return levelNames[l].short
}

// ShouldLog reports whether a message at level l passes minLevel
func (l Level) ShouldLog(minLevel Level) bool {
	if minLevel >= levelOff {
		return false
	}
	return l == LevelAudit || l >= minLevel
}

// ParseLevel parses a configured level name. The empty string is info and
// "audit" keeps only audit records.
func ParseLevel(level string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	for l, n := range levelNames {
		if n.name == name {
			return Level(l), nil
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid log %s: %q", e.Type, e.Input)
}
