package sampler

import (
	"context"
	"sync/atomic"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/microtonal-studio/patchctl/internal/logging"
)

// Virtual port names.
const (
	InPortName     = "sampler-in"
	ImmediatePort  = "immediate-out"
	SamplePortName = "sample-out"
)

// wakeInterval is how often the playback loop checks whether it has been
// interrupted while sleeping between events.
const wakeInterval = 3 * time.Millisecond

// Runner wires the sampler state machine to virtual MIDI ports and owns
// the playback goroutine.
type Runner struct {
	machine *Machine

	// generation invalidates a running loop: playback only proceeds while
	// the counter still matches the value it launched with.
	generation atomic.Uint64
}

// NewRunner creates a runner around a fresh state machine.
func NewRunner() *Runner {
	return &Runner{machine: NewMachine()}
}

// Run opens the virtual ports and processes messages until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return err
	}
	defer drv.Close()

	in, err := drv.OpenVirtualIn(InPortName)
	if err != nil {
		return err
	}
	defer in.Close()

	immediate, err := drv.OpenVirtualOut(ImmediatePort)
	if err != nil {
		return err
	}
	defer immediate.Close()

	sample, err := drv.OpenVirtualOut(SamplePortName)
	if err != nil {
		return err
	}
	defer sample.Close()

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		r.handle(msg.Bytes(), immediate, sample)
	})
	if err != nil {
		return err
	}
	defer stop()

	logging.UserInfo("sampler running: %s -> %s, loop on %s", InPortName, ImmediatePort, SamplePortName)
	<-ctx.Done()
	r.generation.Add(1)
	return nil
}

func (r *Runner) handle(data []byte, immediate, sample drivers.Out) {
	pass, cmd := r.machine.Handle(data, time.Now())
	if pass {
		if err := immediate.Send(data); err != nil {
			logging.Warn("send failed", "port", ImmediatePort, "error", err)
		}
	}

	switch cmd {
	case CmdStartLoop:
		clip := r.machine.Clip()
		if len(clip) == 0 {
			logging.Info("trigger with empty clip, nothing to play")
			return
		}
		gen := r.generation.Add(1)
		go r.playLoop(clip, gen, func(b []byte) {
			if err := sample.Send(b); err != nil {
				logging.Warn("send failed", "port", SamplePortName, "error", err)
			}
		})
	case CmdStop:
		r.generation.Add(1)
	}
}

// playLoop replays the clip on repeat until the generation counter moves
// on. The clip's last offset is the loop length. Notes still sounding
// when the loop is interrupted get their note-offs sent so nothing hangs.
func (r *Runner) playLoop(clip []Event, gen uint64, send func([]byte)) {
	length := clip[len(clip)-1].Offset
	active := newNoteTracker()

	defer func() {
		for _, off := range active.offs() {
			send(off)
		}
	}()

	for {
		start := time.Now()
		for _, ev := range clip {
			if !r.sleepUntil(start.Add(ev.Offset), gen) {
				return
			}
			send(ev.Data)
			active.observe(ev.Data)
		}
		if !r.sleepUntil(start.Add(length), gen) {
			return
		}
	}
}

// sleepUntil waits for the deadline, waking periodically to check the
// generation counter. It reports false if the loop was interrupted.
func (r *Runner) sleepUntil(deadline time.Time, gen uint64) bool {
	for {
		if r.generation.Load() != gen {
			return false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		if remaining > wakeInterval {
			remaining = wakeInterval
		}
		time.Sleep(remaining)
	}
}

// noteTracker follows which (channel, note) pairs are currently sounding
// so an interrupted loop can silence them.
type noteTracker struct {
	active map[[2]uint8]struct{}
}

func newNoteTracker() *noteTracker {
	return &noteTracker{active: make(map[[2]uint8]struct{})}
}

func (t *noteTracker) observe(data []byte) {
	key, ok := noteKey(data)
	if !ok {
		return
	}
	ch, _ := noteChannel(data)
	switch {
	case isNoteOn(data):
		t.active[[2]uint8{ch, key}] = struct{}{}
	case isNoteOff(data):
		delete(t.active, [2]uint8{ch, key})
	}
}

// offs returns note-off messages for everything still sounding.
func (t *noteTracker) offs() [][]byte {
	var out [][]byte
	for pair := range t.active {
		out = append(out, midi.NoteOff(pair[0], pair[1]))
	}
	return out
}
