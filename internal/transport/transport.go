// Package transport defines the port transport interface for patchctl.
// A transport knows how to list the currently addressable endpoints of one
// routing subsystem and how to connect two of them. Implementations wrap
// the subsystem's command-line tools through system.CommandExecutor.
package transport

import (
	"context"
	"fmt"

	"github.com/microtonal-studio/patchctl/internal/system"
)

// Kind identifies a routing subsystem.
type Kind string

const (
	// KindSeq is the ALSA sequencer: endpoints are numeric client:port
	// pairs, managed with aconnect.
	KindSeq Kind = "seq"

	// KindGraph is the PipeWire graph: endpoints are fully-qualified port
	// names, managed with pw-link.
	KindGraph Kind = "graph"
)

// ParseKind parses a transport kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSeq, KindGraph:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown transport %q (want %q or %q)", s, KindSeq, KindGraph)
}

// Row is one candidate endpoint in a listing snapshot. Pattern matching is
// applied against Text, which carries the client and port names together so
// a pattern can hit either without cross-referencing adjacent lines.
type Row struct {
	// Text is the combined text patterns are matched against.
	Text string

	// Display is the human-readable name used in status output.
	Display string

	// Client is the numeric sequencer client id. Seq only.
	Client int

	// Name is the fully-qualified port name. Graph only.
	Name string
}

// Listing is a snapshot of the addressable endpoints of one transport,
// fetched fresh for each resolution run. Sources and Dests hold the
// candidate rows for each side of a connection; for the sequencer they are
// the same rows, for the graph they are the output and input ports.
type Listing struct {
	Kind    Kind
	Sources []Row
	Dests   []Row
}

// Endpoint is a fully resolved, addressable endpoint.
type Endpoint struct {
	// Address is the transport-level address: "client:port" for seq,
	// the fully-qualified port name for graph.
	Address string

	// Display is the human-readable name used in status output.
	Display string
}

// Transport is the interface routing subsystems implement.
type Transport interface {
	// Kind returns the transport identifier.
	Kind() Kind

	// Listing fetches a fresh snapshot of the addressable endpoints.
	Listing(ctx context.Context) (*Listing, error)

	// Resolve turns a matched row into an addressable endpoint. For the
	// sequencer, port selects the port on the matched client (0 is the
	// normal case); the graph ignores it.
	Resolve(row Row, port int) Endpoint

	// Connect issues the underlying connect command for two endpoints.
	Connect(ctx context.Context, src, dst Endpoint) error
}

// New returns the transport implementation for kind, wired to the given
// executor.
func New(kind Kind, exec system.CommandExecutor) (Transport, error) {
	switch kind {
	case KindSeq:
		return NewSeq(exec), nil
	case KindGraph:
		return NewGraph(exec), nil
	}
	return nil, fmt.Errorf("unknown transport %q", kind)
}
