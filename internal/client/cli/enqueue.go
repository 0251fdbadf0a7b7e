package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/fleetsync/internal/client/iocli"
	"github.com/iudanet/fleetsync/internal/models"
	"github.com/iudanet/fleetsync/internal/validation"
)

type enqueueResult struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
}

// NewEnqueueCommand creates the enqueue command.
func NewEnqueueCommand(opts *RootOptions) *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "enqueue <operation>",
		Short: "Queue an outbound item",
		Long: `Queue an outbound item for delivery to the relay.

Operations: MeasurementUpload, DeviceStatusUpdate, SettingsSync,
CartridgeUsageLog, CrdtMerge. A CrdtMerge without payload carries the
current replica snapshot.

Example:
  fleetsync enqueue DeviceStatusUpdate --data '{"battery":80}'
  fleetsync enqueue CartridgeUsageLog --file usage.json`,
		Args: cobra.ExactArgs(1),
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			op, err := models.ParseSyncOperation(args[0])
			if err != nil {
				return err
			}

			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			var id string
			if op == models.OpCrdtMerge && payload == nil {
				id, err = app.manager.EnqueueSnapshot(ctx)
			} else {
				id, err = app.manager.Enqueue(ctx, op, payload)
			}
			if err != nil {
				return err
			}

			return app.io.Result(enqueueResult{ID: id, Operation: op.String()}, func(out iocli.IO) {
				out.Printf("Queued %s item %s\n", op, id)
			})
		}),
	}

	cmd.Flags().StringVar(&data, "data", "", "item payload")
	cmd.Flags().StringVar(&file, "file", "", "read item payload from file")
	cmd.MarkFlagsMutuallyExclusive("data", "file")

	return cmd
}

// readPayload возвращает данные из --data или --file, nil если не задано ни то ни другое
func readPayload(data, file string) ([]byte, error) {
	var payload []byte
	switch {
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		payload = content
	case data != "":
		payload = []byte(data)
	default:
		return nil, nil
	}

	if err := validation.ValidatePayload(payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type measurePayload struct {
	Note       string `json:"note,omitempty"`
	Count      uint64 `json:"count"`
	RecordedAt int64  `json:"recorded_at"`
}

type measureResult struct {
	ID    string `json:"id"`
	Count uint64 `json:"count"`
	Total uint64 `json:"total"`
}

// NewMeasureCommand creates the measure command.
func NewMeasureCommand(opts *RootOptions) *cobra.Command {
	var (
		count uint64
		note  string
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Record completed measurements and queue their upload",
		Args:  cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			if count == 0 {
				return fmt.Errorf("count must be positive")
			}

			payload, err := json.Marshal(measurePayload{
				Count:      count,
				Note:       note,
				RecordedAt: nowMillis(),
			})
			if err != nil {
				return err
			}

			// Сначала очередь: если она полна, счетчик не меняется
			id, err := app.manager.Enqueue(ctx, models.OpMeasurementUpload, payload)
			if err != nil {
				return err
			}
			app.manager.IncrementMeasurements(count)

			res := measureResult{ID: id, Count: count, Total: app.manager.MeasurementTotal()}
			return app.io.Result(res, func(out iocli.IO) {
				out.Printf("Recorded %d measurement(s), fleet total known here: %d\n", res.Count, res.Total)
			})
		}),
	}

	cmd.Flags().Uint64Var(&count, "count", 1, "number of measurements")
	cmd.Flags().StringVar(&note, "note", "", "free-form note attached to the upload")

	return cmd
}
