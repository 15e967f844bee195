package cmd

import (
	"testing"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/profile"
	"github.com/microtonal-studio/patchctl/internal/resolver"
	"github.com/microtonal-studio/patchctl/internal/system"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

func testLinks(n int) []resolver.Spec {
	links := make([]resolver.Spec, n)
	for i := range links {
		links[i] = resolver.Spec{
			Transport: transport.KindSeq,
			Label:     string(rune('a' + i)),
			Source:    resolver.Match{Pattern: "src"},
			Dest:      resolver.Match{Pattern: "dst"},
		}
	}
	return links
}

func TestReportResultsExitCodes(t *testing.T) {
	links := testLinks(2)
	p := &profile.Profile{Name: "test", Links: links}

	tests := []struct {
		name     string
		results  []resolver.Result
		wantCode int
	}{
		{
			name: "all connected",
			results: []resolver.Result{
				{Spec: links[0], Status: resolver.StatusConnected},
				{Spec: links[1], Status: resolver.StatusConnected},
			},
			wantCode: errors.ExitSuccess,
		},
		{
			name: "one missing",
			results: []resolver.Result{
				{Spec: links[0], Status: resolver.StatusConnected},
				{Spec: links[1], Status: resolver.StatusNotFound, Missing: []resolver.Side{resolver.SideDest}},
			},
			wantCode: errors.ExitPartialFailure,
		},
		{
			name: "connect failed",
			results: []resolver.Result{
				{Spec: links[0], Status: resolver.StatusConnected},
				{Spec: links[1], Status: resolver.StatusFailed, Err: errors.New(1, "boom")},
			},
			wantCode: errors.ExitPartialFailure,
		},
		{
			name: "transport down for everything",
			results: []resolver.Result{
				{Spec: links[0], Status: resolver.StatusFailed, Err: resolver.ErrTransportQuery},
				{Spec: links[1], Status: resolver.StatusFailed, Err: resolver.ErrTransportQuery},
			},
			wantCode: errors.ExitTransportFailed,
		},
		{
			name: "transport down but something connected",
			results: []resolver.Result{
				{Spec: links[0], Status: resolver.StatusConnected},
				{Spec: links[1], Status: resolver.StatusFailed, Err: resolver.ErrTransportQuery},
			},
			wantCode: errors.ExitPartialFailure,
		},
		{
			name: "stop-on-error truncation still counts the rest",
			results: []resolver.Result{
				{Spec: links[0], Status: resolver.StatusNotFound, Missing: []resolver.Side{resolver.SideSource}},
			},
			wantCode: errors.ExitPartialFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reportResults(p, tt.results, resolver.Options{})
			if got := errors.GetExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestDescribeMatch(t *testing.T) {
	tests := []struct {
		name  string
		match resolver.Match
		want  string
	}{
		{"pattern only", resolver.Match{Pattern: "CASIO"}, `"CASIO"`},
		{"with context", resolver.Match{Pattern: "MIDI 1", Context: "CASIO USB-MIDI"}, `"MIDI 1" (context "CASIO USB-MIDI")`},
		{"with port", resolver.Match{Pattern: "FLUID", Port: 1}, `"FLUID" port 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeMatch(tt.match); got != tt.want {
				t.Errorf("describeMatch = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfileFromFile(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/cfg/single.toml", []byte(`
description = "test rig"

[[links]]
transport = "seq"
source = "CASIO"
dest = "edo72-in"
`), 0644)
	mockFS.AddFile("/cfg/multi.toml", []byte(`
[profiles.one]
[[profiles.one.links]]
transport = "seq"
source = "a"
dest = "b"

[profiles.two]
[[profiles.two.links]]
transport = "graph"
source = "c"
dest = "d"
`), 0644)
	system.SetDefaultFS(mockFS)
	defer system.ResetDefaults()

	t.Run("single profile file", func(t *testing.T) {
		connectFile = "/cfg/single.toml"
		defer func() { connectFile = "" }()

		p, err := profileFromFile(nil)
		if err != nil {
			t.Fatalf("profileFromFile failed: %v", err)
		}
		if p.Name != "single" {
			t.Errorf("Name = %q, want %q (from filename)", p.Name, "single")
		}
		if len(p.Links) != 1 {
			t.Errorf("got %d links, want 1", len(p.Links))
		}
	})

	t.Run("multi profile file needs a name", func(t *testing.T) {
		connectFile = "/cfg/multi.toml"
		defer func() { connectFile = "" }()

		if _, err := profileFromFile(nil); err == nil {
			t.Error("expected error for unnamed profile in multi-profile file")
		}

		p, err := profileFromFile([]string{"two"})
		if err != nil {
			t.Fatalf("profileFromFile with name failed: %v", err)
		}
		if p.Name != "two" {
			t.Errorf("Name = %q, want %q", p.Name, "two")
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		connectFile = "/cfg/multi.toml"
		defer func() { connectFile = "" }()

		_, err := profileFromFile([]string{"nope"})
		if errors.GetExitCode(err) != errors.ExitProfileNotFound {
			t.Errorf("exit code = %d, want ExitProfileNotFound", errors.GetExitCode(err))
		}
	})
}

func TestPickProfile_NoNameWithoutTerminal(t *testing.T) {
	// Test binaries run with stdin on /dev/null, so the picker path must
	// refuse cleanly instead of launching the TUI.
	connectFile = ""

	p, err := pickProfile(nil)
	if p != nil {
		t.Errorf("got profile %v, want none", p)
	}
	if errors.GetExitCode(err) != errors.ExitGeneralError {
		t.Errorf("exit code = %d, want ExitGeneralError (err: %v)", errors.GetExitCode(err), err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"connect", "ports", "profiles", "up", "down", "status", "shell", "pulse", "edo72", "sampler", "echo"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}
