package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/application/settings"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
)

// NewSettingsCommand creates the settings command with all subcommands
func NewSettingsCommand(container *app.Container) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change user settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, container)
		},
	}

	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every setting",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSettings(cmd, container)
			},
		},
		newSettingsGetCommand(container),
		newSettingsSetCommand(container),
		newSettingsResetCommand(container),
		newSettingsDiffCommand(container),
		newSettingsThemeCommand(container),
		newSettingsModeCommand(container),
	)
	return settingsCmd
}

func showSettings(cmd *cobra.Command, container *app.Container) error {
	ctx := cmd.Context()
	values := make(map[string]interface{}, len(settings.Keys()))
	for _, key := range settings.Keys() {
		value, err := container.Settings.Get(ctx, key)
		if err != nil {
			return err
		}
		values[key] = value
	}
	helpers.NewRenderer(cmd.OutOrStdout(), container.Settings.GetSettings(ctx)).RenderSettings(values)
	return nil
}

func newSettingsGetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print a single setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := container.Settings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSettingsSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a single setting",
		Example: `  hateshield settings set historyLimit 10
  hateshield settings set backendUrl http://localhost:5000
  hateshield settings set darkMode false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := container.Settings.Set(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			helpers.NewNotifier(cmd.ErrOrStderr(), updated).Notify(domain.FeedbackSuccess, "Settings saved!")
			return nil
		},
	}
}

func newSettingsResetCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmer := helpers.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), yes)
			confirmed, err := confirmer.Confirm("Reset all settings to default?")
			if err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
			defaults, err := container.Settings.Reset(cmd.Context())
			if err != nil {
				return err
			}
			helpers.NewNotifier(cmd.ErrOrStderr(), defaults).Notify(domain.FeedbackSuccess, "Settings reset to defaults")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newSettingsDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show settings that differ from the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			diff := settings.Diff(container.Settings.GetSettings(cmd.Context()))
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "All settings are at their defaults.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}

func newSettingsThemeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between dark and light mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := container.Settings.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			theme := "light"
			if updated.DarkMode {
				theme = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		},
	}
}

func newSettingsModeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [local|llm|offline]",
		Short:     "Show or select the default backend",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.RunModeLocal), string(domain.RunModeLLM), string(domain.RunModeOffline)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), container.Settings.RunMode(ctx))
				return nil
			}
			mode, err := helpers.ParseModeFlag(args[0])
			if err != nil {
				return err
			}
			if err := container.Settings.SetRunMode(ctx, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run mode: %s\n", mode)
			return nil
		},
	}
}
