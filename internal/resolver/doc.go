// Package resolver turns declarative connection specs into concrete port
// connections.
//
// A Spec names a source pattern and a destination pattern on one transport
// (ALSA sequencer or PipeWire graph). The resolver fetches that transport's
// endpoint listing once per run, matches each pattern to exactly one row,
// and issues the transport's connect command when both sides resolve.
//
// Outcomes are collected per spec, never short-circuited: a missing device
// produces a not-found result and the run moves on. Resolution is
// deterministic for a fixed listing and purely read-only; only the connect
// call itself mutates the port graph.
package resolver
