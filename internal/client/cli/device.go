package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/fleetsync/internal/client/iocli"
	"github.com/iudanet/fleetsync/internal/validation"
)

// NewDeviceCommand creates the device command group.
func NewDeviceCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage paired devices",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <device-id>",
			Short: "Pair a device",
			Args:  cobra.ExactArgs(1),
			RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
				if err := validation.ValidateDeviceID(args[0]); err != nil {
					return err
				}
				tag := app.manager.AddDevice(args[0])

				res := map[string]string{"device": args[0], "tag": tag}
				return app.io.Result(res, func(out iocli.IO) {
					out.Printf("Paired %s\n", args[0])
				})
			}),
		},
		&cobra.Command{
			Use:   "remove <device-id>",
			Short: "Unpair a device",
			Args:  cobra.ExactArgs(1),
			RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
				if err := validation.ValidateDeviceID(args[0]); err != nil {
					return err
				}
				known := app.manager.HasDevice(args[0])
				app.manager.RemoveDevice(args[0])

				res := map[string]any{"device": args[0], "removed": known}
				return app.io.Result(res, func(out iocli.IO) {
					if known {
						out.Printf("Unpaired %s\n", args[0])
					} else {
						out.Printf("Device %s is not paired\n", args[0])
					}
				})
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List paired devices",
			Args:  cobra.NoArgs,
			RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
				devices := app.manager.ListDevices()
				if devices == nil {
					devices = []string{}
				}

				return app.io.Result(devices, func(out iocli.IO) {
					if len(devices) == 0 {
						out.Println("No paired devices")
						return
					}
					for _, d := range devices {
						out.Println(d)
					}
				})
			}),
		},
	)

	return cmd
}
