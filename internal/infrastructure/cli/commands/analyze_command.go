package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
	"github.com/doeshing/hateshield/internal/ports"
)

// AnalyzeOptions holds the flags shared by the root command and analyze.
type AnalyzeOptions struct {
	Stdin      bool
	Mode       string
	Copy       bool
	UseRewrite bool
	JSONOutput bool
}

// BindAnalyzeFlags registers the analyze flags on cmd.
func BindAnalyzeFlags(cmd *cobra.Command, opts *AnalyzeOptions) {
	cmd.Flags().BoolVar(&opts.Stdin, "stdin", false, "Read the text to analyze from stdin")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Backend to use: local|llm|offline (default from settings)")
	cmd.Flags().BoolVarP(&opts.Copy, "copy", "c", false, "Copy the safe rewrite to the clipboard")
	cmd.Flags().BoolVar(&opts.UseRewrite, "use-rewrite", false, "Print only the safe rewrite")
	cmd.Flags().BoolVar(&opts.JSONOutput, "json", false, "Print the result as JSON")
}

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand(container *app.Container) *cobra.Command {
	var opts AnalyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Classify text and suggest a respectful rewrite",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAnalyze(cmd, container, opts, args)
		},
	}
	BindAnalyzeFlags(cmd, &opts)
	return cmd
}

// RunAnalyze submits the argument text (or stdin) through the analysis flow and
// prints the result.
func RunAnalyze(cmd *cobra.Command, container *app.Container, opts AnalyzeOptions, args []string) error {
	ctx := cmd.Context()

	text := strings.Join(args, " ")
	if opts.Stdin {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}

	mode, err := helpers.ParseModeFlag(opts.Mode)
	if err != nil {
		return err
	}

	settings := container.Settings.GetSettings(ctx)
	notifier := helpers.NewNotifier(cmd.ErrOrStderr(), settings)
	flow, _, err := container.NewFlow(ctx, mode, notifier)
	if err != nil {
		return err
	}

	if settings.Animations && !opts.JSONOutput {
		spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "Analyzing...")
		flow.OnTransition(func(ev domain.FlowEvent) {
			switch ev.To {
			case domain.StateRequesting:
				spinner.Start()
			case domain.StateSuccess, domain.StateFailed:
				spinner.Stop()
			}
		})
		defer spinner.Stop()
	}

	result, err := flow.Submit(ctx, text)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.JSONOutput:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case opts.UseRewrite:
		fmt.Fprintln(out, rewriteOf(result))
	default:
		helpers.NewRenderer(out, settings).RenderResult(result)
	}

	if opts.Copy {
		copyRewrite(helpers.NewClipboard(), notifier, rewriteOf(result))
	}
	return nil
}

func rewriteOf(result domain.AnalysisResult) string {
	if result.RewrittenText == "" {
		return result.OriginalText
	}
	return result.RewrittenText
}

func copyRewrite(clipboard ports.Clipboard, notifier ports.Notifier, text string) {
	if text == "" {
		notifier.Notify(domain.FeedbackWarning, "No text to copy")
		return
	}
	if !clipboard.Enabled() {
		notifier.Notify(domain.FeedbackWarning, "No clipboard tool available")
		return
	}
	if err := clipboard.Copy(text); err != nil {
		notifier.Notify(domain.FeedbackError, "Failed to copy to clipboard")
		return
	}
	notifier.Notify(domain.FeedbackSuccess, "Copied to clipboard!")
}

