package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/application/analysis"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(container *app.Container) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-analyze a draft file whenever it changes",
		Long:  "Watches a file and analyzes its contents after 2 seconds without further edits. Requires the autoAnalyze setting.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runMode, err := helpers.ParseModeFlag(mode)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchFile(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), container, runMode, args[0])
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Backend to use: local|llm|offline (default from settings)")
	return cmd
}

func watchFile(ctx context.Context, out, errOut io.Writer, container *app.Container, mode domain.RunMode, path string) error {
	settings := container.Settings.GetSettings(ctx)
	if !settings.AutoAnalyze {
		return ErrAutoAnalyzeDisabled
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	notifier := helpers.NewNotifier(errOut, settings)
	flow, analyzer, err := container.NewFlow(ctx, mode, notifier)
	if err != nil {
		return err
	}
	renderer := helpers.NewRenderer(out, settings)

	debouncer := analysis.NewDebouncer(flow, container.Settings, func(result domain.AnalysisResult, err error) {
		if err == nil {
			renderer.RenderResult(result)
			fmt.Fprintln(out)
		}
	})
	defer debouncer.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that save via rename keep being tracked.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	fmt.Fprintf(errOut, "Watching %s via %s (Ctrl+C to stop)\n", path, analyzer.Name())

	submit := func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			container.Logger.Debug("draft unreadable", map[string]interface{}{"path": path, "error": err.Error()})
			return
		}
		debouncer.Input(ctx, string(raw))
	}
	submit()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				submit()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			container.Logger.Warn("watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}
