package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	clientsync "github.com/iudanet/fleetsync/internal/client/sync"
)

// NewDaemonCommand creates the daemon command.
func NewDaemonCommand(opts *RootOptions) *cobra.Command {
	var probeInterval time.Duration

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run background synchronization until interrupted",
		Long: `Run background synchronization until interrupted.

The daemon probes the relay to track connectivity, drains the queue every
sync interval while connected and retries failed items with an exponential
backoff.`,
		Args: cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := clientsync.NewRunner(app.manager,
				app.cfg.SyncInterval, app.cfg.RetryBaseDelay, app.cfg.RetryMaxDelay, app.logger)

			app.logger.Info("Daemon started",
				"replica_id", app.manager.ReplicaID(),
				"relay", app.cfg.RelayURL,
				"interval", app.cfg.SyncInterval)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return runner.Run(gctx)
			})
			g.Go(func() error {
				return probeRelay(gctx, app, probeInterval)
			})

			err := g.Wait()
			app.logger.Info("Daemon stopped")
			return err
		}),
	}

	cmd.Flags().DurationVar(&probeInterval, "probe-interval", 10*time.Second, "relay connectivity probe interval")

	return cmd
}

// probeRelay обновляет флаг связи по результату health check relay
func probeRelay(ctx context.Context, app *App, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		_, err := app.relay.Health(probeCtx)
		cancel()

		if err != nil && ctx.Err() == nil {
			app.logger.Debug("Relay is unreachable", "error", err)
		}
		if ctx.Err() == nil {
			app.manager.SetConnected(err == nil)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
