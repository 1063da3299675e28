// File: format.go
// Title: Log Output Formats
// Description: JSON, text, console and logfmt formatters. JSON is the default
//              for the HTTP service, console for the CLI.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with four formats
// - 2026-10-18 v0.2.0: Sorted field output for stable text and logfmt lines

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format selects an output format
type Format int

const (
	FormatJSON Format = iota
	FormatText
	FormatConsole
	FormatLogfmt
)

// String returns the name of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "console", "con":
		return FormatConsole, nil
	case "logfmt":
		return FormatLogfmt, nil
	default:
		return FormatJSON, &ParseError{Input: format, Type: "format"}
	}
}

// Formatter renders an entry into a single output line
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+6)
	for k, v := range entry.Fields {
		data[k] = v
	}

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.RequestID != "" {
		data["request_id"] = entry.RequestID
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
		if m, ok := entry.Error.(json.Marshaler); ok {
			if raw, err := m.MarshalJSON(); err == nil {
				data["error_details"] = json.RawMessage(raw)
			}
		}
	}
	if entry.Duration > 0 {
		data["duration_ms"] = float64(entry.Duration.Nanoseconds()) / 1e6
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter formats entries as "timestamp [LEVEL] logger: message k=v"
type TextFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(entry.Timestamp.Format(f.TimestampFormat))
	buf.WriteString(" [")
	buf.WriteString(strings.ToUpper(entry.Level.String()))
	buf.WriteString("] ")
	if entry.Logger != "" {
		buf.WriteString(entry.Logger)
		buf.WriteString(": ")
	}
	buf.WriteString(entry.Message)
	writePairs(&buf, entry, false)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ConsoleFormatter is a compact human format for terminals
type ConsoleFormatter struct{}

// Format formats a log entry for the console
func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(entry.Timestamp.Format("15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(entry.Level.ShortString())
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)
	writePairs(&buf, entry, false)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// LogfmtFormatter formats entries as logfmt key=value pairs
type LogfmtFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as logfmt
func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "ts=%s level=%s msg=%s",
		entry.Timestamp.Format(f.TimestampFormat), entry.Level.String(), quote(entry.Message))
	if entry.Logger != "" {
		fmt.Fprintf(&buf, " logger=%s", quote(entry.Logger))
	}
	writePairs(&buf, entry, true)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// GetFormatter returns the formatter for format
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return &TextFormatter{TimestampFormat: time.RFC3339}
	case FormatConsole:
		return &ConsoleFormatter{}
	case FormatLogfmt:
		return &LogfmtFormatter{TimestampFormat: time.RFC3339}
	default:
		return &JSONFormatter{TimestampFormat: time.RFC3339}
	}
}

func writePairs(buf *bytes.Buffer, entry *Entry, quoted bool) {
	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	value := func(v interface{}) string {
		s := fmt.Sprint(v)
		if quoted {
			return quote(s)
		}
		return s
	}

	if entry.RequestID != "" {
		fmt.Fprintf(buf, " request_id=%s", value(entry.RequestID))
	}
	for _, k := range keys {
		fmt.Fprintf(buf, " %s=%s", k, value(entry.Fields[k]))
	}
	if entry.Error != nil {
		fmt.Fprintf(buf, " error=%s", value(entry.Error.Error()))
	}
	if entry.Duration > 0 {
		fmt.Fprintf(buf, " duration=%s", entry.Duration)
	}
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
