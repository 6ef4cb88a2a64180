package commands

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	configapp "github.com/doeshing/hateshield/internal/application/config"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/hateshield/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect HateShield process configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, container)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show full configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd, container)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
				return nil
			},
		},
		newConfigValidateCommand(container),
		newConfigDiffCommand(container),
		newConfigResetCommand(container),
	)
	return configCmd
}

func showConfiguration(cmd *cobra.Command, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return err
	}
	return helpers.WriteYAML(cmd.OutOrStdout(), cfg)
}

func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := configapp.Validate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show differences from the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			defaults, err := configinfra.DefaultConfig()
			if err != nil {
				return err
			}
			// data_dir is expanded on load and would always differ
			defaults.Storage.DataDir = cfg.Storage.DataDir
			diff := cmp.Diff(defaults, cfg)
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoDifferencesFromDefault)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}

func newConfigResetCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Back up the config file and restore the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmer := helpers.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), yes)
			confirmed, err := confirmer.Confirm("Reset configuration to defaults?")
			if err != nil || !confirmed {
				return err
			}
			backup, err := container.ConfigLoader.Backup()
			if err != nil {
				container.Logger.Warn("config backup skipped", map[string]interface{}{"error": err.Error()})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", backup)
			}
			if _, err := container.ConfigLoader.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
