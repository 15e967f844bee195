// Package pulse implements the MIDI test pulse: a virtual output port that
// emits a quiet high note on a fixed period. Patch it into a synth or
// monitor to verify a route end to end.
package pulse

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/microtonal-studio/patchctl/internal/logging"
)

// PortName is the virtual output port the pulse appears on.
const PortName = "midi-pulse"

// Config holds the pulse parameters.
type Config struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
	On       time.Duration
	Off      time.Duration
}

// DefaultConfig returns a quiet C7 every 300ms (100ms on, 200ms off).
func DefaultConfig() Config {
	return Config{
		Note:     96,
		Velocity: 10,
		Channel:  0,
		On:       100 * time.Millisecond,
		Off:      200 * time.Millisecond,
	}
}

// Messages returns the note-on and note-off messages for one pulse.
func (c Config) Messages() (on, off midi.Message) {
	return midi.NoteOn(c.Channel, c.Note, c.Velocity), midi.NoteOff(c.Channel, c.Note)
}

// Run creates the virtual port and pulses until ctx is cancelled. The note
// is always released before returning so no tone hangs.
func Run(ctx context.Context, cfg Config) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("midi driver: %w", err)
	}
	defer drv.Close()

	out, err := drv.OpenVirtualOut(PortName)
	if err != nil {
		return fmt.Errorf("virtual output %s: %w", PortName, err)
	}
	defer out.Close()

	logging.Info("pulse started", "port", PortName,
		"note", cfg.Note, "velocity", cfg.Velocity,
		"period", cfg.On+cfg.Off)

	on, off := cfg.Messages()
	for {
		if err := out.Send(on); err != nil {
			return fmt.Errorf("send note on: %w", err)
		}
		if !sleep(ctx, cfg.On) {
			_ = out.Send(off)
			return nil
		}
		if err := out.Send(off); err != nil {
			return fmt.Errorf("send note off: %w", err)
		}
		if !sleep(ctx, cfg.Off) {
			return nil
		}
	}
}

// sleep waits for d or until ctx is cancelled; it reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
