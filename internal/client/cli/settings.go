package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/fleetsync/internal/client/iocli"
	"github.com/iudanet/fleetsync/internal/models"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change replicated settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
			settings := app.manager.Settings()
			return app.io.Result(settings, func(out iocli.IO) {
				printSettings(out, settings)
			})
		}),
	}

	var next models.Settings
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; the latest write wins across the fleet",
		Args:  cobra.NoArgs,
	}
	set.RunE = opts.runWithApp(func(ctx context.Context, app *App, args []string) error {
		settings := app.manager.Settings()

		flags := set.Flags()
		if flags.Changed("theme") {
			settings.Theme = next.Theme
		}
		if flags.Changed("locale") {
			settings.Locale = next.Locale
		}
		if flags.Changed("unit") {
			settings.MeasurementUnit = next.MeasurementUnit
		}
		if flags.Changed("reminder") {
			settings.MeasurementReminder = next.MeasurementReminder
		}
		if flags.Changed("notifications") {
			settings.NotificationsEnabled = next.NotificationsEnabled
		}

		app.manager.UpdateSettings(settings)

		return app.io.Result(settings, func(out iocli.IO) {
			printSettings(out, settings)
		})
	})

	set.Flags().StringVar(&next.Theme, "theme", "", "UI theme")
	set.Flags().StringVar(&next.Locale, "locale", "", "locale")
	set.Flags().StringVar(&next.MeasurementUnit, "unit", "", "measurement unit")
	set.Flags().StringVar(&next.MeasurementReminder, "reminder", "", "measurement reminder schedule")
	set.Flags().BoolVar(&next.NotificationsEnabled, "notifications", true, "enable notifications")

	cmd.AddCommand(show, set)
	return cmd
}

func printSettings(out iocli.IO, s models.Settings) {
	out.Printf("Theme:         %s\n", s.Theme)
	out.Printf("Locale:        %s\n", s.Locale)
	out.Printf("Unit:          %s\n", s.MeasurementUnit)
	out.Printf("Reminder:      %s\n", s.MeasurementReminder)
	out.Printf("Notifications: %t\n", s.NotificationsEnabled)
}
