package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/logging"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the audio session container",
	Long: `up starts the studio's audio container with the host's PulseAudio
socket and sound device mounted in. An existing stopped container is
restarted; a running one is left alone.`,
	Args: cobra.NoArgs,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := sessionConfig()
	if err != nil {
		return err
	}

	rt, err := sessionRuntime()
	if err != nil {
		return err
	}

	logging.Debug("starting session container", "name", cfg.Name, "image", cfg.Image, "engine", rt.Name())
	logInfo("Starting session container %s...", cfg.Name)

	if err := rt.Up(ctx, cfg); err != nil {
		return errors.ContainerFailed("up", err)
	}

	logSuccess("Session container %s running", cfg.Name)
	return nil
}
