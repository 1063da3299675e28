package cmd

import (
	"errors"
	"io"

	"github.com/msto63/numerik/foundation/core/config"
	mdwerror "github.com/msto63/numerik/foundation/core/error"
	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/foundation/utils/filex"
	"github.com/msto63/numerik/internal/calc"
	"github.com/msto63/numerik/internal/journal"
	"github.com/msto63/numerik/pkg/core/logging"
)

// app is what a command needs at run time: configuration, logger, the
// calculation service and the journal
type app struct {
	cfg      *config.Config
	settings calc.Settings
	logger   *mdwlog.Logger
	svc      *calc.Service
	store    journal.Store

	logCloser io.Closer
}

// openOptions tune open for a single command
type openOptions struct {
	// withJournal opens the journal when settings enable it
	withJournal bool
	// logOutput replaces stderr as the log writer
	logOutput io.Writer
	// logFormat is used when the configuration does not set log.format
	logFormat string
}

// loadConfig reads --config, or the default file when it exists. Without a
// file only NUMERIK_* environment variables and built-in defaults apply.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.cfgFile
	if path == "" {
		path = filex.HomePath(".numerik", "config.toml")
		if !filex.IsFile(path) {
			return config.NewFromMap(nil, calc.EnvPrefix), nil
		}
	}
	return config.LoadWithOptions(path, config.LoadOptions{
		Format:    config.FormatAuto,
		EnvPrefix: calc.EnvPrefix,
	})
}

func (o *rootOptions) open(opts openOptions) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	settings, err := calc.LoadSettings(cfg)
	if err != nil {
		return nil, err
	}

	level := settings.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	if o.verbose {
		level = "debug"
	}
	format := settings.Log.Format
	if opts.logFormat != "" && !cfg.Has("log.format") {
		format = opts.logFormat
	}
	logger, closer, err := logging.NewLogger(logging.LoggerConfig{
		ServiceName: "numerik",
		Level:       level,
		Format:      format,
		File:        settings.Log.File,
		Output:      opts.logOutput,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, settings: settings, logger: logger, logCloser: closer}

	var svcOpts calc.Options
	svcOpts.Logger = logger
	if opts.withJournal && settings.Journal.Enabled {
		store, err := journal.OpenSQLite(journal.SQLiteConfig{Path: settings.Journal.Path})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.store = store
		svcOpts.Journal = store
		logger.Debug("journal opened", mdwlog.String("path", settings.Journal.Path))
	}

	svc, err := calc.New(settings, svcOpts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.svc = svc
	return a, nil
}

// requireJournal fails when the journal is disabled in the settings
func (a *app) requireJournal() error {
	if a.store == nil {
		return mdwerror.New("journal is disabled (journal.enabled = false)").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("journal")
	}
	return nil
}

// Close releases the service, the journal and the log file
func (a *app) Close() error {
	if a.svc != nil {
		a.svc.Close()
	}
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
