// File: watch.go
// Title: Configuration File Watching
// Description: Reloads the configuration when its file changes and notifies
//              registered handlers. Uses fsnotify on the parent directory so
//              that editors replacing the file atomically are detected.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Polling based watcher
// - 2026-10-18 v0.2.0: fsnotify watcher bound to a context

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwstringx "github.com/msto63/numerik/foundation/utils/stringx"
)

// Watch blocks until ctx is done, reloading the configuration whenever the
// file is written, created or renamed into place. Reload errors are passed to
// onError (if non-nil) and the previous values stay active.
func (c *Config) Watch(ctx context.Context, onError func(error)) error {
	if mdwstringx.IsBlank(c.filePath) {
		return mdwerror.New("file path required for watching").
			WithCode(mdwerror.CodeValidationFailed).
			WithOperation("config.Watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch")
	}
	defer watcher.Close()

	target := filepath.Clean(c.filePath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return mdwerror.Wrap(err, "failed to watch config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch").
			WithDetail("filePath", c.filePath)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := c.Reload(); err != nil && onError != nil {
				onError(err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(werr)
			}
		}
	}
}

// Reload re-reads the file and notifies handlers synchronously
func (c *Config) Reload() error {
	content, err := os.ReadFile(c.filePath)
	if err != nil {
		return mdwerror.Wrap(err, "failed to read config file during reload").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Reload").
			WithDetail("filePath", c.filePath)
	}

	newData, err := parseContent(content, c.format)
	if err != nil {
		return mdwerror.Wrap(err, "failed to parse config file during reload").
			WithOperation("config.Reload").
			WithDetail("filePath", c.filePath)
	}

	c.mu.Lock()
	oldConfig := c.snapshot()
	c.data = newData
	newConfig := c.snapshot()
	handlers := make([]ChangeHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, handler := range handlers {
		if handler != nil {
			handler(oldConfig, newConfig)
		}
	}
	return nil
}

// snapshot copies the current state; caller holds c.mu
func (c *Config) snapshot() *Config {
	return &Config{
		data:      deepCopyMap(c.data),
		defaults:  c.defaults,
		filePath:  c.filePath,
		format:    c.format,
		envPrefix: c.envPrefix,
		lookupEnv: c.lookupEnv,
	}
}

func deepCopyMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]interface{}); ok {
			dst[k] = deepCopyMap(nested)
			continue
		}
		dst[k] = v
	}
	return dst
}
