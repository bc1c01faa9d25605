package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/treeguess/config"
	"github.com/YuminosukeSato/treeguess/server"
)

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long:  `Load the tree and serve questions and guesses over HTTP until interrupted`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(rootConfig, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg := a.config.Config()
	gin.SetMode(gin.ReleaseMode)

	if cfg.Cache.Warm {
		if _, err := a.resolver.Warm(ctx); err != nil {
			return err
		}
	}

	opts := []server.Option{
		server.WithAddr(cfg.Server.Addr),
		server.WithLogger(a.logger),
		server.WithStaticDir(cfg.Server.StaticDir),
		server.WithCORSOrigins(cfg.Server.CORSOrigins...),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(server.NewMetrics(), cfg.Metrics.Path))
	}
	srv := server.New(a.resolver, opts...)

	changes := make(chan config.Config, 1)
	a.config.Watch(func(c config.Config) {
		select {
		case changes <- c:
		default:
		}
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case c := <-changes:
				// Only the log level is applied live; the tree and listener are fixed at startup.
				if c.Model.Path != cfg.Model.Path || c.Server.Addr != cfg.Server.Addr {
					a.logger.Warn("restart required to apply model.path or server.addr",
						"model.path", c.Model.Path,
						"server.addr", c.Server.Addr,
					)
				}
			}
		}
	})
	return g.Wait()
}
