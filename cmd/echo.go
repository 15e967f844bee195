package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/echo"
	"github.com/microtonal-studio/patchctl/internal/errors"
)

var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Run the MIDI echo",
	Long: `echo opens a virtual input and two outputs: messages arriving on
echo-in pass straight to immediate-out and replay on echo-out after a
fixed delay. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runEcho,
}

var echoDelay time.Duration

func init() {
	echoCmd.Flags().DurationVar(&echoDelay, "delay", echo.DefaultDelay, "Echo delay")
	rootCmd.AddCommand(echoCmd)
}

func runEcho(cmd *cobra.Command, args []string) error {
	if echoDelay <= 0 {
		return errors.ValidationError("delay must be positive")
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := echo.Run(ctx, echo.Config{Delay: echoDelay}); err != nil {
		return errors.New(errors.ExitGeneralError, err.Error())
	}
	return nil
}
