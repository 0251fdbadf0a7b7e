// Package cli implements the replica command line: inspecting and driving the
// local replica, and running it as a background sync daemon.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/iudanet/fleetsync/internal/client/iocli"
	"github.com/iudanet/fleetsync/internal/config"
	"github.com/iudanet/fleetsync/internal/logging"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{iocli.FormatText, iocli.FormatJSON, iocli.FormatYAML}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	cfg    *config.Client
	logger *slog.Logger

	DBPath   string
	RelayURL string
	Secret   string
	Format   string
	Verbose  bool
}

// NewRootCommand creates the root command of the replica CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "fleetsync",
		Short:   "FleetSync replica",
		Long:    "Offline-first replica: queues outbound work and converges replicated state with the fleet through a relay.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", iocli.FormatText, "output format (text|json|yaml)")
	flags.StringVar(&opts.DBPath, "db", "", "path to the replica database (env FLEETSYNC_DB)")
	flags.StringVar(&opts.RelayURL, "relay", "", "relay base URL (env FLEETSYNC_RELAY_URL)")
	flags.StringVar(&opts.Secret, "secret", "", "fleet secret used to sign tokens (env FLEETSYNC_SECRET)")

	cmd.AddCommand(
		NewStatusCommand(opts),
		NewEnqueueCommand(opts),
		NewMeasureCommand(opts),
		NewDeviceCommand(opts),
		NewSettingsCommand(opts),
		NewSyncCommand(opts),
		NewRetryCommand(opts),
		NewClearCommand(opts),
		NewExportCommand(opts),
		NewImportCommand(opts),
		NewDaemonCommand(opts),
	)

	return cmd
}

// load читает окружение и применяет поверх него явно заданные флаги
func (o *RootOptions) load(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = o.DBPath
	}
	if flags.Changed("relay") {
		cfg.RelayURL = o.RelayURL
	}
	if flags.Changed("secret") {
		cfg.Secret = o.Secret
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	return nil
}
