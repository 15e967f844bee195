package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/pulse"
)

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Emit a periodic MIDI test note",
	Long: `pulse opens a virtual output port and sends a quiet high note on a
fixed period. Patch it into a synth or monitor to verify a route end to
end. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runPulse,
}

var (
	pulseNote     uint8
	pulseVelocity uint8
	pulseChannel  uint8
	pulseOn       time.Duration
	pulseOff      time.Duration
)

func init() {
	defaults := pulse.DefaultConfig()
	pulseCmd.Flags().Uint8Var(&pulseNote, "note", defaults.Note, "MIDI note number to pulse")
	pulseCmd.Flags().Uint8Var(&pulseVelocity, "velocity", defaults.Velocity, "Note velocity")
	pulseCmd.Flags().Uint8Var(&pulseChannel, "channel", defaults.Channel, "MIDI channel")
	pulseCmd.Flags().DurationVar(&pulseOn, "on", defaults.On, "Note-on duration")
	pulseCmd.Flags().DurationVar(&pulseOff, "off", defaults.Off, "Gap between pulses")
	rootCmd.AddCommand(pulseCmd)
}

func runPulse(cmd *cobra.Command, args []string) error {
	if pulseNote > 127 || pulseVelocity > 127 || pulseChannel > 15 {
		return errors.ValidationError("note and velocity must be 0-127, channel 0-15")
	}

	ctx, cancel := signalContext()
	defer cancel()

	cfg := pulse.Config{
		Note:     pulseNote,
		Velocity: pulseVelocity,
		Channel:  pulseChannel,
		On:       pulseOn,
		Off:      pulseOff,
	}

	if err := pulse.Run(ctx, cfg); err != nil {
		return errors.New(errors.ExitGeneralError, err.Error())
	}
	return nil
}
