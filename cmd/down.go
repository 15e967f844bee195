package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove the audio session container",
	Args:  cobra.NoArgs,
	RunE:  runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)
}

func runDown(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := sessionConfig()
	if err != nil {
		return err
	}

	rt, err := sessionRuntime()
	if err != nil {
		return err
	}

	logInfo("Stopping session container %s...", cfg.Name)

	if err := rt.Down(ctx, cfg.Name); err != nil {
		return errors.ContainerFailed("down", err)
	}

	logSuccess("Session container %s removed", cfg.Name)
	return nil
}
