package transport

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/microtonal-studio/patchctl/internal/logging"
	"github.com/microtonal-studio/patchctl/internal/system"
)

// Seq wraps the ALSA sequencer tools. Listings come from `aconnect -l`,
// connections are made with `aconnect <sender> <receiver>`.
type Seq struct {
	exec system.CommandExecutor

	// Command is the sequencer tool to invoke. Defaults to aconnect.
	Command string
}

// NewSeq creates a sequencer transport using the given executor.
func NewSeq(exec system.CommandExecutor) *Seq {
	return &Seq{exec: exec, Command: "aconnect"}
}

// Kind returns the transport identifier.
func (s *Seq) Kind() Kind {
	return KindSeq
}

var (
	// client 20: 'CASIO USB-MIDI' [type=kernel,card=2]
	// Quotes and the bracketed suffix are optional so trimmed-down
	// listings parse too.
	seqClientRe = regexp.MustCompile(`^client\s+(\d+):\s+'?(.*?)'?\s*(?:\[.*\])?\s*$`)

	//     0 'CASIO USB-MIDI MIDI 1'
	seqPortRe = regexp.MustCompile(`^\s+(\d+)\s+'?(.*?)'?\s*$`)
)

// Listing fetches and parses the current client/port table.
func (s *Seq) Listing(ctx context.Context) (*Listing, error) {
	out, err := s.exec.Execute(ctx, s.Command, "-l")
	if err != nil {
		return nil, fmt.Errorf("%s -l: %s: %w", s.Command, strings.TrimSpace(string(out)), err)
	}

	rows := parseSeqListing(string(out))
	logging.Debug("sequencer listing", "rows", len(rows))

	// Sequencer clients are both senders and receivers; the same rows
	// serve both sides.
	return &Listing{Kind: KindSeq, Sources: rows, Dests: rows}, nil
}

// parseSeqListing turns aconnect's line-oriented output into structured
// rows. Each port line is folded together with its client header line into
// one row, so matching a port name never requires looking at the adjacent
// line. A client without port lines still yields one row (port 0).
func parseSeqListing(out string) []Row {
	var rows []Row

	client := -1
	clientName := ""
	clientHasPorts := false

	flush := func() {
		if client >= 0 && !clientHasPorts {
			rows = append(rows, seqRow(client, 0, clientName, ""))
		}
	}

	for _, line := range strings.Split(out, "\n") {
		if m := seqClientRe.FindStringSubmatch(line); m != nil {
			flush()
			client, _ = strconv.Atoi(m[1])
			clientName = strings.TrimSpace(m[2])
			clientHasPorts = false
			continue
		}
		if client < 0 {
			continue
		}
		if m := seqPortRe.FindStringSubmatch(line); m != nil {
			port, _ := strconv.Atoi(m[1])
			rows = append(rows, seqRow(client, port, clientName, strings.TrimSpace(m[2])))
			clientHasPorts = true
		}
	}
	flush()

	return rows
}

func seqRow(client, port int, clientName, portName string) Row {
	display := clientName
	if portName != "" && portName != clientName {
		display = clientName + ":" + portName
	}
	text := clientName
	if portName != "" {
		text = clientName + " " + portName
	}
	return Row{
		Text:    text,
		Display: display,
		Client:  client,
		Name:    portName,
	}
}

// Resolve builds the client:port address for a matched row.
func (s *Seq) Resolve(row Row, port int) Endpoint {
	return Endpoint{
		Address: fmt.Sprintf("%d:%d", row.Client, port),
		Display: row.Display,
	}
}

// Connect subscribes dst to src.
func (s *Seq) Connect(ctx context.Context, src, dst Endpoint) error {
	logging.Debug("connecting sequencer ports", "src", src.Address, "dst", dst.Address)

	out, err := s.exec.Execute(ctx, s.Command, src.Address, dst.Address)
	if err != nil {
		return fmt.Errorf("%s %s %s: %s: %w", s.Command, src.Address, dst.Address,
			strings.TrimSpace(string(out)), err)
	}
	return nil
}
