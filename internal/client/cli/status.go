package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fleetsync/internal/client/iocli"
	"github.com/iudanet/fleetsync/internal/models"
)

// ReplicaTally вклад одной реплики в счетчик измерений
type ReplicaTally struct {
	ReplicaID string `json:"replica_id"`
	Count     uint64 `json:"count"`
}

// StatusView состояние реплики для вывода
type StatusView struct {
	ReplicaID    string                 `json:"replica_id"`
	Relay        string                 `json:"relay"`
	RelayStatus  string                 `json:"relay_status,omitempty"`
	Devices      []string               `json:"devices"`
	Failed       []models.SyncQueueItem `json:"failed"`
	Tallies      []ReplicaTally         `json:"tallies"`
	Settings     models.Settings        `json:"settings"`
	QueueSize    int                    `json:"queue_size"`
	Pending      int                    `json:"pending"`
	Retryable    int                    `json:"retryable"`
	LastSyncAt   int64                  `json:"last_sync_at"`
	Measurements uint64                 `json:"measurements"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	var checkRelay bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the replica queue and replicated state",
		Args:  cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			view, err := collectStatus(ctx, app, checkRelay)
			if err != nil {
				return err
			}
			return app.io.Result(view, func(out iocli.IO) {
				printStatus(out, view)
			})
		}),
	}

	cmd.Flags().BoolVar(&checkRelay, "check-relay", false, "also check that the relay is reachable")

	return cmd
}

func collectStatus(ctx context.Context, app *App, checkRelay bool) (*StatusView, error) {
	m := app.manager

	lastSync, err := m.LastSyncAt(ctx)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		ReplicaID:    m.ReplicaID(),
		Relay:        app.cfg.RelayURL,
		QueueSize:    m.QueueSize(),
		Pending:      m.PendingCount(),
		Retryable:    m.RetryableCount(),
		Failed:       m.FailedItems(),
		Measurements: m.MeasurementTotal(),
		Devices:      m.ListDevices(),
		Settings:     m.Settings(),
		LastSyncAt:   lastSync,
	}
	if view.Devices == nil {
		view.Devices = []string{}
	}
	if view.Failed == nil {
		view.Failed = []models.SyncQueueItem{}
	}

	counter := m.Measurements()
	view.Tallies = make([]ReplicaTally, 0, len(counter.Replicas()))
	for _, id := range counter.Replicas() {
		view.Tallies = append(view.Tallies, ReplicaTally{ReplicaID: id, Count: counter.ReplicaValue(id)})
	}

	if checkRelay {
		health, err := app.relay.Health(ctx)
		if err != nil {
			app.logger.Debug("Relay health check failed", "error", err)
			view.RelayStatus = "unreachable"
		} else {
			view.RelayStatus = health.Status
		}
	}

	return view, nil
}

func printStatus(out iocli.IO, v *StatusView) {
	out.Println("=== Replica Status ===")
	out.Printf("Replica:      %s\n", v.ReplicaID)
	out.Printf("Relay:        %s", v.Relay)
	if v.RelayStatus != "" {
		out.Printf(" (%s)", v.RelayStatus)
	}
	out.Println()

	if v.LastSyncAt > 0 {
		out.Printf("Last sync:    %s\n", time.UnixMilli(v.LastSyncAt).UTC().Format(time.RFC3339))
	} else {
		out.Println("Last sync:    never")
	}

	out.Println()
	out.Printf("Queue:        %d item(s), %d pending, %d waiting for retry\n", v.QueueSize, v.Pending, v.Retryable)
	if len(v.Failed) > 0 {
		out.Printf("Failed:       %d item(s) exhausted their retries\n", len(v.Failed))
		for _, item := range v.Failed {
			out.Printf("  %s  %s  retries=%d\n", item.ID, item.Operation, item.RetryCount)
		}
	}

	out.Println()
	out.Printf("Measurements: %d\n", v.Measurements)
	for _, tally := range v.Tallies {
		out.Printf("  %s  %d\n", tally.ReplicaID, tally.Count)
	}
	out.Printf("Devices:      %d\n", len(v.Devices))
	out.Printf("Theme:        %s\n", v.Settings.Theme)
}
