package sampler

import (
	"bytes"
	"testing"
	"time"
)

func noteOn(note uint8) []byte  { return []byte{0x90, note, 100} }
func noteOff(note uint8) []byte { return []byte{0x80, note, 0} }

func TestRecordToggle(t *testing.T) {
	m := NewMachine()
	now := time.Now()

	if m.Recording() {
		t.Fatal("new machine should not be recording")
	}

	pass, cmd := m.Handle(noteOn(KeyRecord), now)
	if pass {
		t.Error("record key should not pass through")
	}
	if cmd != CmdNone {
		t.Errorf("record key produced command %v, want CmdNone", cmd)
	}
	if !m.Recording() {
		t.Fatal("expected recording after record press")
	}

	m.Handle(noteOn(KeyRecord), now.Add(time.Second))
	if m.Recording() {
		t.Fatal("expected recording stopped after second record press")
	}
}

func TestControlNoteOffsPassThrough(t *testing.T) {
	m := NewMachine()
	now := time.Now()

	for _, key := range []uint8{KeyStop, KeyRecord, KeyTrigger} {
		pass, _ := m.Handle(noteOff(key), now)
		if !pass {
			t.Errorf("note-off of control key %d should pass through", key)
		}
	}
}

func TestNormalNotesPassThrough(t *testing.T) {
	m := NewMachine()
	now := time.Now()

	pass, cmd := m.Handle(noteOn(60), now)
	if !pass || cmd != CmdNone {
		t.Errorf("normal note: pass=%v cmd=%v, want true CmdNone", pass, cmd)
	}
	if len(m.Clip()) != 0 {
		t.Error("note while not recording should not be captured")
	}
}

func TestClipOffsets(t *testing.T) {
	m := NewMachine()
	base := time.Now()

	m.Handle(noteOn(KeyRecord), base)
	m.Handle(noteOn(60), base.Add(100*time.Millisecond))
	m.Handle(noteOff(60), base.Add(300*time.Millisecond))
	m.Handle(noteOn(KeyRecord), base.Add(time.Second))

	clip := m.Clip()
	if len(clip) != 2 {
		t.Fatalf("clip has %d events, want 2", len(clip))
	}
	if clip[0].Offset != 100*time.Millisecond {
		t.Errorf("first offset = %v, want 100ms", clip[0].Offset)
	}
	if clip[1].Offset != 300*time.Millisecond {
		t.Errorf("second offset = %v, want 300ms", clip[1].Offset)
	}
	if !bytes.Equal(clip[0].Data, noteOn(60)) {
		t.Errorf("first event = %v, want note-on 60", clip[0].Data)
	}
}

func TestRecordLookback(t *testing.T) {
	m := NewMachine()
	base := time.Now()

	// Note 20ms before the record press: inside the window, so it opens
	// the clip at offset zero and backdates the start.
	m.Handle(noteOn(64), base)
	m.Handle(noteOn(KeyRecord), base.Add(20*time.Millisecond))
	m.Handle(noteOff(64), base.Add(500*time.Millisecond))

	clip := m.Clip()
	if len(clip) != 2 {
		t.Fatalf("clip has %d events, want 2", len(clip))
	}
	if clip[0].Offset != 0 {
		t.Errorf("lookback note offset = %v, want 0", clip[0].Offset)
	}
	if !bytes.Equal(clip[0].Data, noteOn(64)) {
		t.Errorf("lookback event = %v, want note-on 64", clip[0].Data)
	}
	if clip[1].Offset != 500*time.Millisecond {
		t.Errorf("later event offset = %v, want 500ms", clip[1].Offset)
	}
}

func TestRecordLookbackExpired(t *testing.T) {
	m := NewMachine()
	base := time.Now()

	m.Handle(noteOn(64), base)
	m.Handle(noteOn(KeyRecord), base.Add(200*time.Millisecond))

	if len(m.Clip()) != 0 {
		t.Error("note outside the lookback window should not open the clip")
	}
}

func TestTriggerStopsRecordingAndStartsLoop(t *testing.T) {
	m := NewMachine()
	base := time.Now()

	m.Handle(noteOn(KeyRecord), base)
	m.Handle(noteOn(72), base.Add(50*time.Millisecond))

	pass, cmd := m.Handle(noteOn(KeyTrigger), base.Add(time.Second))
	if pass {
		t.Error("trigger key should not pass through")
	}
	if cmd != CmdStartLoop {
		t.Errorf("trigger produced %v, want CmdStartLoop", cmd)
	}
	if m.Recording() {
		t.Error("trigger should stop recording")
	}
	if len(m.Clip()) != 1 {
		t.Errorf("clip has %d events, want 1", len(m.Clip()))
	}
}

func TestStopCommand(t *testing.T) {
	m := NewMachine()
	base := time.Now()

	m.Handle(noteOn(KeyRecord), base)
	pass, cmd := m.Handle(noteOn(KeyStop), base.Add(time.Second))
	if pass {
		t.Error("stop key should not pass through")
	}
	if cmd != CmdStop {
		t.Errorf("stop produced %v, want CmdStop", cmd)
	}
	if m.Recording() {
		t.Error("stop should cancel recording")
	}
}

func TestNoteTracker(t *testing.T) {
	tr := newNoteTracker()

	tr.observe(noteOn(60))
	tr.observe(noteOn(64))
	tr.observe(noteOff(60))

	offs := tr.offs()
	if len(offs) != 1 {
		t.Fatalf("got %d pending offs, want 1", len(offs))
	}
	if offs[0][1] != 64 {
		t.Errorf("pending off for note %d, want 64", offs[0][1])
	}

	// Velocity-zero note-on counts as a note-off.
	tr.observe([]byte{0x90, 64, 0})
	if len(tr.offs()) != 0 {
		t.Error("expected no pending offs after velocity-zero note-on")
	}
}

func TestNoteHelpers(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		on   bool
		off  bool
		note bool
	}{
		{"note on", []byte{0x90, 60, 100}, true, false, true},
		{"note off", []byte{0x80, 60, 0}, false, true, true},
		{"velocity zero on", []byte{0x90, 60, 0}, false, true, true},
		{"channel 5 on", []byte{0x95, 60, 100}, true, false, true},
		{"control change", []byte{0xB0, 7, 127}, false, false, false},
		{"empty", nil, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNoteOn(tt.data); got != tt.on {
				t.Errorf("isNoteOn = %v, want %v", got, tt.on)
			}
			if got := isNoteOff(tt.data); got != tt.off {
				t.Errorf("isNoteOff = %v, want %v", got, tt.off)
			}
			if got := isNoteEvent(tt.data); got != tt.note {
				t.Errorf("isNoteEvent = %v, want %v", got, tt.note)
			}
		})
	}
}
