// Package log provides structured, leveled logging for numerik.
//
// Package: log
// Title: Structured Logging
// Description: Leveled logger with contextual fields and four output formats
//              (JSON, text, console, logfmt). Structured errors passed to
//              LogError are logged at a level matching their severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatConsole})
//	logger.WithName("calc").Info("evaluated", log.String("expr", expr))
//
//	timer := logger.StartTimer("journal.save")
//	defer timer.Stop()
package log
