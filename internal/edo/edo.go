// Package edo implements the 72-EDO note transformer: a virtual MIDI
// in/out pair that remaps piano notes onto multi-channel output for
// microtonal playback. Each note is normalized against the lowest piano A,
// split by divmod 12 into a channel offset and a note offset, and the note
// offset is stretched by the EDO step so the receiving synth can detune per
// channel.
package edo

// Config holds the transform parameters. The defaults suit an 88-key piano
// feeding a synth with channels tuned in sixth-of-a-semitone steps; adjust
// them for whatever the synth wants.
type Config struct {
	// Shift is added to the incoming note before processing, in semitones.
	Shift int

	// MinChannel is the first output channel.
	MinChannel int

	// MinNote is the output note for offset zero. 28 centers the 72-note
	// range inside 0-127.
	MinNote int

	// Step is the number of EDO steps per semitone (72/12 = 6).
	Step int
}

// lowestA is A0, the lowest note on an 88-key piano.
const lowestA = 21

// DefaultConfig returns the standard transformer settings.
func DefaultConfig() Config {
	return Config{
		Shift:      -5,
		MinChannel: 0,
		MinNote:    28,
		Step:       6,
	}
}

// Transform maps one MIDI message. Note on/off events are remapped per the
// config; anything else passes through unchanged. The second return is
// false when the event lands outside the MIDI range and must be dropped.
func (c Config) Transform(msg []byte) ([]byte, bool) {
	if len(msg) < 2 {
		return msg, true
	}

	status := msg[0] & 0xF0
	if len(msg) < 3 || (status != 0x80 && status != 0x90) {
		// Not a note event, pass through unchanged.
		return msg, true
	}

	normalized := int(msg[1]) - lowestA + c.Shift
	channelOffset := normalized / 12
	noteOffset := normalized % 12

	newChannel := c.MinChannel + channelOffset
	newNote := c.MinNote + noteOffset*c.Step

	if newChannel < 0 || newChannel > 15 || newNote < 0 || newNote > 127 {
		// The MIDI standard does not allow such messages.
		return nil, false
	}

	return []byte{status | byte(newChannel), byte(newNote), msg[2]}, true
}
