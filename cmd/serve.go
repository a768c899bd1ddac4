package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/observability"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/store"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, observability.GetLogger())
		},
	}
	cmd.Flags().String("server.port", "", "listen port (overrides PORT)")
	cmd.Flags().String("database.path", "", "sqlite database path")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	st, err := store.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if !cfg.SMTPConfigured() {
		logger.Warn("SMTP credentials not configured; contact messages will be stored but not delivered")
	}
	sender := contact.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.To)

	srv, err := server.New(cfg, st, sender, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return cleanupLoop(ctx, st, srv, cfg.Database, logger) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// limiterPruner forgets idle rate-limit clients.
type limiterPruner interface {
	PruneLimiter() int
}

// cleanupLoop purges expired visitor rows and idle rate-limit clients at
// startup and then on every interval until ctx is done.
func cleanupLoop(ctx context.Context, st *store.Store, lp limiterPruner, cfg config.DatabaseConfig, logger *zap.Logger) error {
	clean := func() {
		if _, err := st.CleanupVisitors(ctx, cfg.Retention); err != nil && ctx.Err() == nil {
			logger.Error("Error cleaning up old visitor data", zap.Error(err))
		}
		if n := lp.PruneLimiter(); n > 0 {
			logger.Debug("Pruned idle rate-limit clients", zap.Int("clients", n))
		}
	}
	clean()
	if cfg.CleanupInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	t := time.NewTicker(cfg.CleanupInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			clean()
		}
	}
}
