package edo

import (
	"bytes"
	"testing"
)

func TestTransform_NoteMapping(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			// Middle C (60): normalized 34 -> channel 2, offset 10 ->
			// note 28 + 60 = 88.
			name: "middle C note on",
			in:   []byte{0x90, 60, 100},
			want: []byte{0x92, 88, 100},
		},
		{
			name: "note off keeps status kind",
			in:   []byte{0x80, 60, 0},
			want: []byte{0x82, 88, 0},
		},
		{
			// A4 (69): normalized 43 -> channel 3, offset 7 -> note 70.
			name: "A4",
			in:   []byte{0x90, 69, 64},
			want: []byte{0x93, 70, 64},
		},
		{
			// Incoming channel is discarded.
			name: "incoming channel ignored",
			in:   []byte{0x95, 60, 100},
			want: []byte{0x92, 88, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.Transform(tt.in)
			if !ok {
				t.Fatalf("Transform(%v) dropped, want %v", tt.in, tt.want)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransform_DropsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()

	// A0 (21) normalizes to -5, which maps below note 0.
	if _, ok := cfg.Transform([]byte{0x90, 21, 100}); ok {
		t.Error("note below range should be dropped")
	}

	// With a high MinChannel the top of the keyboard overflows channel 15.
	high := cfg
	high.MinChannel = 12
	if _, ok := high.Transform([]byte{0x90, 108, 100}); ok {
		t.Error("note above channel range should be dropped")
	}
}

func TestTransform_PassthroughNonNotes(t *testing.T) {
	cfg := DefaultConfig()

	tests := [][]byte{
		{0xB0, 64, 127},   // control change
		{0xC0, 5},         // program change
		{0xFE},            // active sensing
		{0xE0, 0x00, 0x40}, // pitch bend
	}

	for _, msg := range tests {
		got, ok := cfg.Transform(msg)
		if !ok {
			t.Errorf("Transform(%v) dropped a non-note message", msg)
			continue
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("Transform(%v) = %v, want unchanged", msg, got)
		}
	}
}

func TestTransform_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	msg := []byte{0x90, 72, 90}

	first, _ := cfg.Transform(msg)
	second, _ := cfg.Transform(msg)

	if !bytes.Equal(first, second) {
		t.Errorf("identical inputs produced %v and %v", first, second)
	}
}
