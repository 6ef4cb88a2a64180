package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	Ephemeral  bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. The returned cleanup closes the store.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func(), error) {
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		Ephemeral:  opts.Ephemeral,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = container.Close() }

	var rootAnalyze commands.AnalyzeOptions

	root := &cobra.Command{
		Use:   "hateshield [text]",
		Short: "HateShield - detect and rewrite toxic comments",
		Long:  "HateShield classifies text as safe, offensive, hate speech or toxic and suggests a respectful rewrite.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !rootAnalyze.Stdin {
				return cmd.Help()
			}
			return commands.RunAnalyze(cmd, container, rootAnalyze, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.BindAnalyzeFlags(root, &rootAnalyze)

	root.AddCommand(commands.NewAnalyzeCommand(container))
	root.AddCommand(commands.NewWatchCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewSettingsCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewModelsCommand(container))
	root.AddCommand(commands.NewServeCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, cleanup, nil
}
