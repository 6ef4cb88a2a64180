package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recent analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd, container)
		},
	}

	historyCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent analyses, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listHistory(cmd, container)
			},
		},
		newHistoryShowCommand(container),
		newHistoryClearCommand(container),
		newHistorySearchCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
	)
	return historyCmd
}

func listHistory(cmd *cobra.Command, container *app.Container) error {
	ctx := cmd.Context()
	renderer := helpers.NewRenderer(cmd.OutOrStdout(), container.Settings.GetSettings(ctx))
	renderer.RenderHistory(container.History.Records(ctx))
	return nil
}

func newHistoryShowCommand(container *app.Container) *cobra.Command {
	var reanalyze bool
	var mode string

	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Print the full text of a past analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			text, ok := container.History.LoadFromHistory(ctx, index)
			if !ok {
				return fmt.Errorf("no analysis at index %d", index)
			}
			if !reanalyze {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return RunAnalyze(cmd, container, AnalyzeOptions{Mode: mode}, []string{text})
		},
	}

	cmd.Flags().BoolVar(&reanalyze, "analyze", false, "Analyze the text again")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Backend to use with --analyze")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmer := helpers.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), yes)
			cleared, err := container.History.ClearHistory(cmd.Context(), confirmer)
			if err != nil {
				return err
			}
			settings := container.Settings.GetSettings(cmd.Context())
			notifier := helpers.NewNotifier(cmd.ErrOrStderr(), settings)
			if cleared {
				notifier.Notify(domain.FeedbackSuccess, "History cleared")
			} else {
				notifier.Notify(domain.FeedbackWarning, "History kept")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search analyses by text and classification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var classification domain.Classification
			if filter != "" && filter != "all" {
				c, err := domain.ParseClassification(filter)
				if err != nil {
					return err
				}
				classification = c
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			renderer := helpers.NewRenderer(cmd.OutOrStdout(), container.Settings.GetSettings(ctx))
			renderer.RenderSearch(container.History.Search(ctx, query, classification))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "Classification filter: all|safe|offensive|hate_speech|toxic")
	return cmd
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.SecureFilePermissions)
			if err != nil {
				return err
			}
			n, err := container.History.Export(cmd.Context(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s (%s) to %s\n",
				n, helpers.Pluralize(n, "analysis", "analyses"), humanize.Bytes(uint64(info.Size())), args[0])
			return nil
		},
	}
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics for stored analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			renderer := helpers.NewRenderer(cmd.OutOrStdout(), container.Settings.GetSettings(ctx))
			renderer.RenderStats(container.History.Stats(ctx))
			return nil
		},
	}
}
