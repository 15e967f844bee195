// Package sampler implements the MIDI loop sampler: a virtual input whose
// normal notes pass straight through to one output while the top three
// keys of an 88-key piano control recording and looped playback of a clip
// on a second output.
package sampler

import (
	"sync"
	"time"

	"github.com/microtonal-studio/patchctl/internal/logging"
)

// Control keys (the top three notes of an 88-key piano).
const (
	// KeyStop (Bb7) ends the loop, silences hanging notes, and cancels
	// recording if it is going.
	KeyStop = 106

	// KeyRecord (B7) starts or stops recording.
	KeyRecord = 107

	// KeyTrigger (C8) stops recording if active and starts looping.
	KeyTrigger = 108
)

// lookback is how far behind a record press the triggering note may lie
// and still be captured at offset zero.
const lookback = 50 * time.Millisecond

// Command tells the playback loop what to do.
type Command int

const (
	CmdNone Command = iota
	CmdStartLoop
	CmdStop
)

// Event is one recorded message with its offset from the clip start.
type Event struct {
	Data   []byte
	Offset time.Duration
}

// Machine is the sampler state machine. It decides, per incoming message,
// whether to pass it through and whether to start or stop the loop; the
// runner owns the ports and the playback goroutine.
type Machine struct {
	mu           sync.Mutex
	recording    bool
	clip         []Event
	recordStart  time.Time
	lastNoteAt   time.Time
	lastNoteData []byte
}

// NewMachine creates an empty sampler state machine.
func NewMachine() *Machine {
	return &Machine{}
}

// Handle processes one incoming message at the given time. pass reports
// whether the message goes through to the immediate output; cmd is the
// playback command it produced, if any.
//
// Control keys act on their note-on; their note-offs are ordinary
// messages and pass through like everything else.
func (m *Machine) Handle(data []byte, now time.Time) (pass bool, cmd Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if key, ok := noteKey(data); ok && isNoteOn(data) {
		switch key {
		case KeyStop:
			if m.recording {
				m.stopRecording()
			}
			return false, CmdStop
		case KeyRecord:
			if m.recording {
				m.stopRecording()
			} else {
				m.startRecording(now)
			}
			return false, CmdNone
		case KeyTrigger:
			if m.recording {
				m.stopRecording()
			}
			return false, CmdStartLoop
		}
	}

	// Normal event: remember the latest note for the record lookback and
	// capture it while recording.
	if isNoteEvent(data) {
		m.lastNoteAt = now
		m.lastNoteData = append([]byte(nil), data...)
	}
	if m.recording {
		m.clip = append(m.clip, Event{
			Data:   append([]byte(nil), data...),
			Offset: now.Sub(m.recordStart),
		})
	}
	return true, CmdNone
}

// startRecording clears the clip and starts a new one. A note played just
// before the record press (within the lookback window) is the note the
// player meant to start with, so it becomes the clip's first event.
func (m *Machine) startRecording(now time.Time) {
	m.recording = true
	m.clip = nil

	if m.lastNoteData != nil && now.Sub(m.lastNoteAt) <= lookback {
		m.recordStart = m.lastNoteAt
		m.clip = append(m.clip, Event{Data: m.lastNoteData, Offset: 0})
		logging.Info("recording started", "lookback", now.Sub(m.lastNoteAt))
		return
	}

	m.recordStart = now
	logging.Info("recording started")
}

func (m *Machine) stopRecording() {
	m.recording = false
	m.recordStart = time.Time{}
	logging.Info("recording stopped", "events", len(m.clip))
}

// Recording reports whether a clip is being captured.
func (m *Machine) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

// Clip returns a snapshot of the captured clip.
func (m *Machine) Clip() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.clip))
	copy(out, m.clip)
	return out
}

// noteKey returns the key of a note event.
func noteKey(data []byte) (uint8, bool) {
	if len(data) >= 2 && isNoteEvent(data) {
		return data[1], true
	}
	return 0, false
}

func noteChannel(data []byte) (uint8, bool) {
	if len(data) == 0 {
		return 0, false
	}
	return data[0] & 0x0F, true
}

func isNoteOn(data []byte) bool {
	return len(data) >= 3 && data[0]&0xF0 == 0x90 && data[2] > 0
}

func isNoteOff(data []byte) bool {
	if len(data) < 3 {
		return false
	}
	status := data[0] & 0xF0
	// Note off, or note on with velocity 0
	return status == 0x80 || (status == 0x90 && data[2] == 0)
}

func isNoteEvent(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	status := data[0] & 0xF0
	return status == 0x80 || status == 0x90
}
