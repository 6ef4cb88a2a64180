package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/hateshield/internal/app"
	"github.com/doeshing/hateshield/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, storage and backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			ctx := cmd.Context()
			report, err := container.DoctorService.Run(ctx)

			// Display report even if there were errors
			helpers.NewRenderer(cmd.OutOrStdout(), container.Settings.GetSettings(ctx)).RenderDoctorReport(report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			return nil
		},
	}
}
