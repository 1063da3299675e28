// Package logging builds the service loggers of the numerik binaries from
// configuration settings.
package logging

import (
	"io"
	"os"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/foundation/utils/filex"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, written as the logger name
	ServiceName string

	// Log level (debug, info, warn, error, audit)
	Level string

	// Output format: json, text, console or logfmt
	Format string

	// File additionally receives every entry when set; its directory is created
	File string

	// Output replaces stderr as the primary writer
	Output io.Writer

	// Additional outputs besides the primary writer and File
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a JSON info-level configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger creates a logger from cfg. The returned closer releases the log
// file, if any; it is never nil.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, mdwerrors.ConfigInvalid("log.level", cfg.Level, err.Error())
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nopCloser{}, mdwerrors.ConfigInvalid("log.format", cfg.Format, err.Error())
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	writers := []io.Writer{output}
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := filex.EnsureParentDir(cfg.File); err != nil {
			return nil, nopCloser{}, mdwerrors.OperationFailed(mdwerrors.ModuleConfig, "open_log_file", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nopCloser{}, mdwerrors.OperationFailed(mdwerrors.ModuleConfig, "open_log_file", err)
		}
		writers = append(writers, f)
		closer = f
	}
	writers = append(writers, cfg.AdditionalOutputs...)
	if len(writers) > 1 {
		output = io.MultiWriter(writers...)
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
	return logger, closer, nil
}
