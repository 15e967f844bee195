package profile

import (
	"github.com/microtonal-studio/patchctl/internal/resolver"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

// Builtin returns the built-in profile table. These cover the studio's
// standing setups; user TOML profiles with the same name replace them.
func Builtin() map[string]Profile {
	return map[string]Profile{
		"edo72": {
			Name:        "edo72",
			Description: "USB keyboard through the 72-EDO transformer into the synth",
			Links: []resolver.Spec{
				{
					Transport: transport.KindSeq,
					Label:     "keyboard -> edo72",
					Source:    resolver.Match{Pattern: "CASIO USB-MIDI MIDI 1", Context: "CASIO USB-MIDI"},
					Dest:      resolver.Match{Pattern: "edo72-in"},
				},
				{
					Transport: transport.KindSeq,
					Label:     "edo72 -> synth",
					Source:    resolver.Match{Pattern: "edo72-out"},
					Dest:      resolver.Match{Pattern: "FLUID Synth"},
				},
			},
		},
		"sampler": {
			Name:        "sampler",
			Description: "USB keyboard through the loop sampler into the synth",
			Links: []resolver.Spec{
				{
					Transport: transport.KindSeq,
					Label:     "keyboard -> sampler",
					Source:    resolver.Match{Pattern: "CASIO USB-MIDI MIDI 1", Context: "CASIO USB-MIDI"},
					Dest:      resolver.Match{Pattern: "sampler-in"},
				},
				{
					Transport: transport.KindSeq,
					Label:     "sampler passthrough -> synth",
					Source:    resolver.Match{Pattern: "immediate-out"},
					Dest:      resolver.Match{Pattern: "FLUID Synth"},
				},
				{
					Transport: transport.KindSeq,
					Label:     "sampler loop -> synth",
					Source:    resolver.Match{Pattern: "sample-out"},
					Dest:      resolver.Match{Pattern: "FLUID Synth"},
				},
			},
		},
		"daw": {
			Name:        "daw",
			Description: "Keyboard and transformer into the DAW over the PipeWire graph",
			Links: []resolver.Spec{
				{
					Transport: transport.KindGraph,
					Label:     "keyboard -> daw",
					Source:    resolver.Match{Pattern: "CASIO USB-MIDI", Context: "capture"},
					Dest:      resolver.Match{Pattern: "REAPER:MIDI Input 1"},
				},
				{
					Transport: transport.KindGraph,
					Label:     "edo72 -> daw",
					Source:    resolver.Match{Pattern: "edo72-out"},
					Dest:      resolver.Match{Pattern: "REAPER:MIDI Input 2"},
				},
			},
		},
	}
}
