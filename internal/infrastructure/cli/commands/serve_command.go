package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/backend"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
	"github.com/doeshing/hateshield/internal/infrastructure/server"
	"github.com/doeshing/hateshield/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand(container *app.Container) *cobra.Command {
	var addr string
	var mode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HateShield analysis backend",
		Long: `Serves GET / and POST /analyze so the local run mode has a backend to talk to.
By default the configured LLM models are used, falling back to the offline rules
when none can be built.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runMode, err := helpers.ParseModeFlag(mode)
			if err != nil {
				return err
			}
			analyzer, err := serverAnalyzer(cmd.Context(), container, runMode)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = container.Config.GetServerAddr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "HateShield backend on http://%s using %s\n", addr, analyzer.Name())
			return server.New(analyzer, container.Logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Analyzer to serve: llm|offline")
	return cmd
}

func serverAnalyzer(ctx context.Context, container *app.Container, mode domain.RunMode) (ports.Analyzer, error) {
	switch mode {
	case domain.RunModeLocal:
		return nil, ErrServeLocalMode
	case "":
		analyzer, err := container.Analyzer(ctx, domain.RunModeLLM)
		if err != nil {
			container.Logger.Warn("no LLM model available, serving offline rules", map[string]interface{}{"error": err.Error()})
			return backend.NewHeuristicAnalyzer(), nil
		}
		return analyzer, nil
	default:
		return container.Analyzer(ctx, mode)
	}
}
