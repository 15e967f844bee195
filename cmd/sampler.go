package cmd

import (
	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/sampler"
)

var samplerCmd = &cobra.Command{
	Use:   "sampler",
	Short: "Run the MIDI loop sampler",
	Long: `sampler opens three virtual ports: notes arriving on sampler-in
pass straight to immediate-out, while the top three piano keys control
recording and looped playback of a clip on sample-out.

  Bb7 (106)  stop the loop
  B7  (107)  start/stop recording
  C8  (108)  play the recorded clip on repeat

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runSampler,
}

func init() {
	rootCmd.AddCommand(samplerCmd)
}

func runSampler(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	if err := sampler.NewRunner().Run(ctx); err != nil {
		return errors.New(errors.ExitGeneralError, err.Error())
	}
	return nil
}
