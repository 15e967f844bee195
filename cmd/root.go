package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "patchctl",
	Short: "MIDI studio patching CLI",
	Long: `patchctl wires up a microtonal MIDI studio.

It connects hardware and software ports by name across:
  - The ALSA sequencer (aconnect)
  - The PipeWire graph (pw-link)

Connections are declared in profiles, resolved against the live port
listings, and applied in one shot. It also runs the studio's virtual
MIDI tools and its audio session container.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
