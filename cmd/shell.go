package cmd

import (
	"context"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
)

var shellCmd = &cobra.Command{
	Use:   "shell [-- <command>]",
	Short: "Open a shell in the audio session container",
	Long: `shell replaces the current process with an interactive shell in the
session container. Arguments after -- run as a command instead.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := sessionConfig()
	if err != nil {
		return err
	}

	rt, err := sessionRuntime()
	if err != nil {
		return err
	}

	running, err := rt.IsRunning(context.Background(), cfg.Name)
	if err != nil {
		return errors.ContainerFailed("inspect", err)
	}
	if !running {
		return errors.SessionNotRunning(cfg.Name)
	}

	command := []string{"/bin/bash"}
	if len(args) > 0 {
		// Quote the arguments into one string so the container shell sees
		// them the way the host shell did.
		command = []string{"/bin/sh", "-lc", shellquote.Join(args...)}
	}

	return rt.Shell(cfg.Name, command)
}
