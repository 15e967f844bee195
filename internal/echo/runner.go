package echo

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/microtonal-studio/patchctl/internal/logging"
)

// Virtual port names.
const (
	InPortName    = "echo-in"
	ImmediatePort = "immediate-out"
	EchoPortName  = "echo-out"
)

// drainInterval is how often the replay loop checks for due messages.
const drainInterval = time.Millisecond

// Run creates the virtual ports and echoes messages until ctx is
// cancelled. Everything arriving on echo-in goes to immediate-out right
// away and to echo-out after the configured delay.
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

	immediate, err := drv.OpenVirtualOut(ImmediatePort)
	if err != nil {
		return fmt.Errorf("virtual output %s: %w", ImmediatePort, err)
	}
	defer immediate.Close()

	echoOut, err := drv.OpenVirtualOut(EchoPortName)
	if err != nil {
		return fmt.Errorf("virtual output %s: %w", EchoPortName, err)
	}
	defer echoOut.Close()

	queue := NewQueue(cfg.Delay)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		data := msg.Bytes()
		if err := immediate.Send(data); err != nil {
			logging.Warn("send failed", "port", ImmediatePort, "error", err)
		}
		queue.Push(data, time.Now())
	})
	if err != nil {
		return fmt.Errorf("listen on %s: %w", InPortName, err)
	}
	defer stop()

	logging.UserInfo("echo running: %s -> %s, %v echo on %s",
		InPortName, ImmediatePort, cfg.Delay, EchoPortName)

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			for _, data := range queue.Due(now) {
				if err := echoOut.Send(data); err != nil {
					logging.Warn("send failed", "port", EchoPortName, "error", err)
				}
			}
		}
	}
}
