package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microtonal-studio/patchctl/internal/logging"
	"github.com/microtonal-studio/patchctl/internal/system"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

// ErrTransportQuery marks results whose transport listing could not be
// fetched at all. Callers use this to distinguish a broken subsystem from
// an ordinary failed connection.
var ErrTransportQuery = errors.New("transport query failed")

// Side names one end of a connection.
type Side int

const (
	SideSource Side = iota
	SideDest
)

func (s Side) String() string {
	if s == SideSource {
		return "source"
	}
	return "destination"
}

// Match describes how to locate one endpoint in a listing. Pattern is a
// substring that must select exactly one row; Context optionally narrows
// the candidates when several rows mention the pattern. Port overrides the
// sequencer port on the matched client (0 is the default and the normal
// case; graph transports ignore it).
type Match struct {
	Pattern string
	Context string
	Port    int
}

// Spec is one desired link. Immutable once built.
type Spec struct {
	Transport transport.Kind
	Label     string
	Source    Match
	Dest      Match
}

// Status classifies the outcome of one spec.
type Status int

const (
	// StatusConnected means both sides resolved and the connect call was
	// issued (or skipped under dry-run).
	StatusConnected Status = iota

	// StatusNotFound means one or both sides did not resolve to exactly
	// one endpoint. No connect call was made.
	StatusNotFound

	// StatusFailed means the connect call (or the transport listing
	// behind it) failed.
	StatusFailed
)

// Result is the outcome of attempting one Spec.
type Result struct {
	Spec   Spec
	Status Status

	// Source and Dest are set when the respective side resolved.
	Source transport.Endpoint
	Dest   transport.Endpoint

	// Missing names the unresolved sides for StatusNotFound.
	Missing []Side

	// Err is set for StatusFailed.
	Err error
}

// MissingNames describes the unresolved sides with their patterns, e.g.
// "destination \"edo72-in\"".
func (r Result) MissingNames() string {
	parts := make([]string, 0, len(r.Missing))
	for _, side := range r.Missing {
		m := r.Spec.Source
		if side == SideDest {
			m = r.Spec.Dest
		}
		parts = append(parts, fmt.Sprintf("%s %q", side, m.Pattern))
	}
	return strings.Join(parts, ", ")
}

// Options control a resolution run.
type Options struct {
	// StopOnError aborts the run at the first spec that does not connect.
	// The returned results then cover only the specs processed so far.
	StopOnError bool

	// DryRun resolves both sides but never issues connect calls.
	DryRun bool
}

// Resolver turns a list of Specs into a list of Results. Specs are
// processed sequentially in caller order; each transport's listing is
// fetched once per run and reused, since the port graph does not change
// mid-run.
type Resolver struct {
	transports map[transport.Kind]transport.Transport
}

// New creates a resolver with the standard transports wired to exec.
func New(exec system.CommandExecutor) *Resolver {
	seq := transport.NewSeq(exec)
	graph := transport.NewGraph(exec)
	return NewWith(seq, graph)
}

// NewWith creates a resolver over the given transports. Used by tests to
// inject fakes.
func NewWith(ts ...transport.Transport) *Resolver {
	m := make(map[transport.Kind]transport.Transport, len(ts))
	for _, t := range ts {
		m[t.Kind()] = t
	}
	return &Resolver{transports: m}
}

// Run resolves and connects every spec in order. Failures are independent:
// a spec that does not resolve or connect never blocks the next one. The
// one exception is a failed listing fetch, which fails every spec of that
// transport kind since nothing can be resolved against it.
func (r *Resolver) Run(ctx context.Context, specs []Spec, opts Options) []Result {
	listings := make(map[transport.Kind]*transport.Listing)
	listErrs := make(map[transport.Kind]error)

	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		res := r.runOne(ctx, spec, opts, listings, listErrs)
		results = append(results, res)

		if opts.StopOnError && res.Status != StatusConnected {
			logging.Debug("stopping on first error", "label", spec.Label)
			break
		}
	}
	return results
}

func (r *Resolver) runOne(
	ctx context.Context,
	spec Spec,
	opts Options,
	listings map[transport.Kind]*transport.Listing,
	listErrs map[transport.Kind]error,
) Result {
	res := Result{Spec: spec}

	tr, ok := r.transports[spec.Transport]
	if !ok {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("unknown transport %q", spec.Transport)
		return res
	}

	// One listing per transport kind per run. A failed fetch is remembered
	// and fails every later spec of the same kind without re-querying.
	listing, fetched := listings[spec.Transport]
	if !fetched {
		if prev, failed := listErrs[spec.Transport]; failed {
			res.Status = StatusFailed
			res.Err = prev
			return res
		}
		var err error
		listing, err = tr.Listing(ctx)
		if err != nil {
			wrapped := fmt.Errorf("%w (%s): %v", ErrTransportQuery, spec.Transport, err)
			listErrs[spec.Transport] = wrapped
			res.Status = StatusFailed
			res.Err = wrapped
			return res
		}
		listings[spec.Transport] = listing
	}

	srcRow, srcOK := findRow(listing.Sources, spec.Source)
	dstRow, dstOK := findRow(listing.Dests, spec.Dest)

	if !srcOK || !dstOK {
		res.Status = StatusNotFound
		if !srcOK {
			res.Missing = append(res.Missing, SideSource)
		}
		if !dstOK {
			res.Missing = append(res.Missing, SideDest)
		}
		return res
	}

	res.Source = tr.Resolve(srcRow, spec.Source.Port)
	res.Dest = tr.Resolve(dstRow, spec.Dest.Port)

	if opts.DryRun {
		res.Status = StatusConnected
		return res
	}

	if err := tr.Connect(ctx, res.Source, res.Dest); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	res.Status = StatusConnected
	return res
}

// findRow selects the single row matching m. The primary pattern is a
// substring match; when it hits several rows the context pattern narrows
// them. Zero or multiple surviving candidates means no match, never a
// guess among them.
func findRow(rows []transport.Row, m Match) (transport.Row, bool) {
	if m.Pattern == "" {
		return transport.Row{}, false
	}

	var matches []transport.Row
	for _, row := range rows {
		if strings.Contains(row.Text, m.Pattern) {
			matches = append(matches, row)
		}
	}

	if len(matches) > 1 && m.Context != "" {
		var narrowed []transport.Row
		for _, row := range matches {
			if strings.Contains(row.Text, m.Context) {
				narrowed = append(narrowed, row)
			}
		}
		matches = narrowed
	}

	if len(matches) != 1 {
		return transport.Row{}, false
	}
	return matches[0], true
}
