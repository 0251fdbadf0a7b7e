package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fleetsync/internal/client/iocli"
	clientsync "github.com/iudanet/fleetsync/internal/client/sync"
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Deliver queued items and exchange state with the relay",
		Args:  cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			// Команда запускается по требованию пользователя: считаем что сеть есть
			app.manager.SetConnected(true)

			result, err := app.manager.Sync(ctx)
			if err != nil {
				return fmt.Errorf("synchronization failed: %w", err)
			}

			return app.io.Result(result, func(out iocli.IO) {
				printSyncResult(out, result)
			})
		}),
	}
}

func printSyncResult(out iocli.IO, r clientsync.SyncResult) {
	out.Println("=== Synchronization ===")
	out.Printf("Delivered: %d item(s)\n", r.Synced)
	out.Printf("Failed:    %d item(s)\n", r.Failed)
	out.Printf("Remaining: %d item(s)\n", r.Remaining)
	if r.Failed > 0 {
		out.Println()
		out.Println("Run 'fleetsync retry' to queue failed items again.")
	}
}

// NewRetryCommand creates the retry command.
func NewRetryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Move failed items with retries left back to pending",
		Args:  cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			n, err := app.manager.RetryFailed(ctx)
			if err != nil {
				return err
			}

			exhausted := len(app.manager.FailedItems())
			res := map[string]int{"retried": n, "exhausted": exhausted}
			return app.io.Result(res, func(out iocli.IO) {
				out.Printf("Queued %d item(s) for retry\n", n)
				if exhausted > 0 {
					out.Printf("%d item(s) exhausted their retries and stay failed\n", exhausted)
				}
			})
		}),
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every queued item",
		Args:  cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			if !force {
				return fmt.Errorf("refusing to drop %d queued item(s) without --force", app.manager.QueueSize())
			}

			dropped := app.manager.QueueSize()
			if err := app.manager.ClearQueue(ctx); err != nil {
				return err
			}

			return app.io.Result(map[string]int{"dropped": dropped}, func(out iocli.IO) {
				out.Printf("Dropped %d item(s)\n", dropped)
			})
		}),
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm dropping undelivered items")

	return cmd
}
