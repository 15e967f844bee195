package edo

import (
	"context"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/microtonal-studio/patchctl/internal/logging"
)

const (
	// InPortName is the virtual input port the keyboard is patched into.
	InPortName = "edo72-in"

	// OutPortName is the virtual output port feeding the synth.
	OutPortName = "edo72-out"
)

// Run creates the virtual port pair and transforms messages until ctx is
// cancelled.
func Run(ctx context.Context, cfg Config) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("midi driver: %w", err)
	}
	defer drv.Close()

	in, err := drv.OpenVirtualIn(InPortName)
	if err != nil {
		return fmt.Errorf("virtual input %s: %w", InPortName, err)
	}
	defer in.Close()

	out, err := drv.OpenVirtualOut(OutPortName)
	if err != nil {
		return fmt.Errorf("virtual output %s: %w", OutPortName, err)
	}
	defer out.Close()

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		data, ok := cfg.Transform(msg.Bytes())
		if !ok {
			logging.Debug("dropping out-of-range note", "msg", msg.String())
			return
		}
		if err := out.Send(data); err != nil {
			logging.Warn("send failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("listen on %s: %w", InPortName, err)
	}
	defer stop()

	logging.Info("72-EDO transformer started",
		"in", InPortName, "out", OutPortName,
		"min_channel", cfg.MinChannel, "min_note", cfg.MinNote)

	<-ctx.Done()
	return nil
}
