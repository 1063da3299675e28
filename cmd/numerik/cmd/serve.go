package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/msto63/numerik/foundation/core/config"
	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Starts the numerik HTTP/JSON API.

Endpoints:
  POST /v1/eval, /v1/reduce, /v1/divide, /v1/format, /v1/run
  POST /v1/codec/encode, /v1/codec/decode
  GET  /v1/journal, /v1/journal/{id}
  GET  /health, /metrics

When started with a config file the file is watched; engine and log
settings are applied on change without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(openOptions{withJournal: true, logFormat: "json"})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := server.DefaultConfig()
			cfg.Addr = a.settings.Server.Addr
			if addr != "" {
				cfg.Addr = addr
			}
			srv := server.New(cfg, a.svc, a.logger)

			return serve(ctx, a, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// serve runs the HTTP server and, with a config file, the config watcher
// until ctx is done or one of them fails
func serve(ctx context.Context, a *app, srv *server.Server) error {
	logger := a.logger.WithName("serve")

	a.cfg.OnChange(func(_, next *config.Config) {
		// ApplyConfig logs a rejected change itself
		if err := a.svc.ApplyConfig(next); err != nil {
			return
		}
		logger.Info("config reloaded", mdwlog.String("file", next.FilePath()))
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if a.cfg.FilePath() != "" {
		g.Go(func() error {
			return a.cfg.Watch(gctx, func(err error) {
				logger.WarnWithErr("config reload failed", err)
			})
		})
	}

	err := g.Wait()
	logger.Info("numerik stopped")
	return err
}
