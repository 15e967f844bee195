package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/microtonal-studio/patchctl/internal/logging"
	"github.com/microtonal-studio/patchctl/internal/system"
)

// Graph wraps the PipeWire link tools. Output ports come from `pw-link -o`,
// input ports from `pw-link -i`, and links are made with
// `pw-link <output> <input>`.
type Graph struct {
	exec system.CommandExecutor

	// Command is the link tool to invoke. Defaults to pw-link.
	Command string
}

// NewGraph creates a graph transport using the given executor.
func NewGraph(exec system.CommandExecutor) *Graph {
	return &Graph{exec: exec, Command: "pw-link"}
}

// Kind returns the transport identifier.
func (g *Graph) Kind() Kind {
	return KindGraph
}

// Listing fetches the current output and input port names. Sources are the
// graph's output ports, dests its input ports.
func (g *Graph) Listing(ctx context.Context) (*Listing, error) {
	outputs, err := g.listPorts(ctx, "-o")
	if err != nil {
		return nil, err
	}
	inputs, err := g.listPorts(ctx, "-i")
	if err != nil {
		return nil, err
	}

	logging.Debug("graph listing", "outputs", len(outputs), "inputs", len(inputs))
	return &Listing{Kind: KindGraph, Sources: outputs, Dests: inputs}, nil
}

func (g *Graph) listPorts(ctx context.Context, flag string) ([]Row, error) {
	out, err := g.exec.Execute(ctx, g.Command, flag)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %s: %w", g.Command, flag, strings.TrimSpace(string(out)), err)
	}

	var rows []Row
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		rows = append(rows, Row{Text: name, Display: name, Name: name})
	}
	return rows, nil
}

// Resolve returns the matched port name as the address. Graph ports carry
// no numeric sub-address, so port is ignored.
func (g *Graph) Resolve(row Row, port int) Endpoint {
	return Endpoint{Address: row.Name, Display: row.Name}
}

// Connect links the output port src to the input port dst.
func (g *Graph) Connect(ctx context.Context, src, dst Endpoint) error {
	logging.Debug("linking graph ports", "src", src.Address, "dst", dst.Address)

	out, err := g.exec.Execute(ctx, g.Command, src.Address, dst.Address)
	if err != nil {
		return fmt.Errorf("%s %q %q: %s: %w", g.Command, src.Address, dst.Address,
			strings.TrimSpace(string(out)), err)
	}
	return nil
}
