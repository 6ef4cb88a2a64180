package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/domain"
)

const modelSampleText = "Have a wonderful day, everyone."

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage the LLM models used by llm mode and serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	modelsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List configured models",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listModels(cmd.Context(), cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "use <name>",
			Short: "Set the default model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return updateModels(cmd.Context(), container, func(cfg *domain.Config) error {
					return cfg.SetDefaultModel(args[0])
				})
			},
		},
		newModelsAddCommand(container),
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a model definition",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return updateModels(cmd.Context(), container, func(cfg *domain.Config) error {
					return cfg.RemoveModel(args[0])
				})
			},
		},
		newModelsTestCommand(container),
	)
	return modelsCmd
}

func newModelsAddCommand(container *app.Container) *cobra.Command {
	var model domain.ModelDefinition

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new model definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateModels(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.AddModel(model)
			})
		},
	}

	cmd.Flags().StringVar(&model.Name, "name", "", "Model name (identifier)")
	cmd.Flags().StringVar(&model.Endpoint, "endpoint", "", "Provider endpoint URL")
	cmd.Flags().StringVar(&model.ModelID, "model-id", "", "Model identifier at provider")
	cmd.Flags().StringVar(&model.AuthEnvVar, "auth-env", "", "Environment variable containing API key")
	cmd.Flags().StringVar(&model.OrgEnvVar, "org-env", "", "Environment variable containing org/project ID")
	cmd.Flags().IntVar(&model.MaxTokens, "max-tokens", domain.DefaultMaxTokens, "Max tokens for responses")
	return cmd
}

func newModelsTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Send a sample text through a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := container.ConfigProvider.Load(ctx)
			if err != nil {
				return err
			}
			model, ok := cfg.FindModelByName(args[0])
			if !ok {
				return fmt.Errorf("model %s not found", args[0])
			}
			analyzer, err := container.Analyzers.ForModel(model)
			if err != nil {
				return err
			}

			timeout := container.Settings.GetSettings(ctx).RequestTimeoutDuration()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			result, err := analyzer.Analyze(ctx, modelSampleText)
			if err != nil {
				return fmt.Errorf("model %s failed: %w", model.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s responded in %s: %s (%.0f%%)\n",
				model.Name, time.Since(start).Round(time.Millisecond), result.Classification.Label(), result.Confidence)
			return nil
		},
	}
}

func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	if len(cfg.Models) == 0 {
		fmt.Fprintln(out, "No models configured.")
		return nil
	}
	for _, model := range cfg.Models {
		marker := " "
		if model.Name == cfg.Preferences.DefaultModel {
			marker = "*"
		}
		fmt.Fprintf(out, "%s ", marker)
		printModel(out, model)
	}
	return nil
}

func printModel(w io.Writer, model domain.ModelDefinition) {
	fmt.Fprintf(w, "%s (%s, %s)\n", model.Name, model.Kind(), model.ModelID)
}

// updateModels applies mutate to the stored config, backing up the old file first.
func updateModels(ctx context.Context, container *app.Container, mutate func(*domain.Config) error) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return err
	}
	if err := mutate(&cfg); err != nil {
		return err
	}
	if _, err := container.ConfigLoader.Backup(); err != nil {
		container.Logger.Debug("config backup skipped", map[string]interface{}{"error": err.Error()})
	}
	return container.ConfigLoader.Save(cfg)
}
