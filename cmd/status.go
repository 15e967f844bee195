package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the audio session container status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := sessionConfig()
	if err != nil {
		return err
	}

	rt, err := sessionRuntime()
	if err != nil {
		return err
	}

	info, err := rt.Status(ctx, cfg.Name)
	if err != nil {
		return errors.ContainerFailed("status", err)
	}

	fmt.Printf("Session: %s\n", info.Name)
	fmt.Printf("Engine: %s\n", rt.Name())
	fmt.Printf("Status: %s\n", info.Status)

	if info.Status == session.StatusRunning {
		fmt.Printf("Image: %s\n", info.Image)
		fmt.Printf("Started: %s\n", info.StartedAt)
	}

	return nil
}
