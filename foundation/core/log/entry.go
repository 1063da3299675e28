// File: entry.go
// Title: Log Entries and Fields
// Description: Defines the log entry written by formatters and the Fields
//              helpers used at call sites.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package log

import (
	"time"
)

// Entry is a single log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
	Duration  time.Duration
}

// Fields holds structured key-value data for an entry
type Fields map[string]interface{}

// Field creates a single-entry Fields
func Field(key string, value interface{}) Fields { return Fields{key: value} }

// Err creates an "error" field
func Err(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

// Duration creates a duration field rendered in milliseconds
func Duration(key string, d time.Duration) Fields {
	return Fields{key: float64(d.Nanoseconds()) / 1e6}
}

// Int creates an int field
func Int(key string, value int) Fields { return Fields{key: value} }

// Int64 creates an int64 field
func Int64(key string, value int64) Fields { return Fields{key: value} }

// Float64 creates a float64 field
func Float64(key string, value float64) Fields { return Fields{key: value} }

// String creates a string field
func String(key, value string) Fields { return Fields{key: value} }

// Bool creates a bool field
func Bool(key string, value bool) Fields { return Fields{key: value} }

// Any creates a field with an arbitrary value
func Any(key string, value interface{}) Fields { return Fields{key: value} }

// Merge returns a new Fields containing f overlaid with other
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Clone returns a shallow copy of f
func (f Fields) Clone() Fields {
	return f.Merge(nil)
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
