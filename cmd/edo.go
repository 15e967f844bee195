package cmd

import (
	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/edo"
	"github.com/microtonal-studio/patchctl/internal/errors"
)

var edoCmd = &cobra.Command{
	Use:   "edo72",
	Short: "Run the 72-EDO note transformer",
	Long: `edo72 opens a virtual in/out port pair and remaps incoming piano
notes onto multi-channel output for microtonal playback. Point the
keyboard at edo72-in and the synth at edo72-out. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runEdo,
}

var (
	edoShift      int
	edoMinChannel int
	edoMinNote    int
	edoStep       int
)

func init() {
	defaults := edo.DefaultConfig()
	edoCmd.Flags().IntVar(&edoShift, "shift", defaults.Shift, "Semitone shift applied to incoming notes")
	edoCmd.Flags().IntVar(&edoMinChannel, "min-channel", defaults.MinChannel, "First output channel")
	edoCmd.Flags().IntVar(&edoMinNote, "min-note", defaults.MinNote, "Output note for offset zero")
	edoCmd.Flags().IntVar(&edoStep, "step", defaults.Step, "EDO steps per semitone")
	rootCmd.AddCommand(edoCmd)
}

func runEdo(cmd *cobra.Command, args []string) error {
	if edoMinChannel < 0 || edoMinChannel > 15 || edoMinNote < 0 || edoMinNote > 127 || edoStep < 1 {
		return errors.ValidationError("min-channel must be 0-15, min-note 0-127, step at least 1")
	}

	ctx, cancel := signalContext()
	defer cancel()

	cfg := edo.Config{
		Shift:      edoShift,
		MinChannel: edoMinChannel,
		MinNote:    edoMinNote,
		Step:       edoStep,
	}

	if err := edo.Run(ctx, cfg); err != nil {
		return errors.New(errors.ExitGeneralError, err.Error())
	}
	return nil
}
