package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/microtonal-studio/patchctl/internal/system"
)

const inspectRunning = `[{"State":{"Status":"running","Running":true,"StartedAt":"2026-08-12T10:00:00Z"},"Config":{"Image":"ghcr.io/microtonal-studio/studio-audio:latest"}}]`

const inspectStopped = `[{"State":{"Status":"exited","Running":false,"StartedAt":""},"Config":{"Image":"ghcr.io/microtonal-studio/studio-audio:latest"}}]`

func newTestRuntime(exec system.CommandExecutor) *DockerRuntime {
	return &DockerRuntime{Command: "docker", exec: exec}
}

func TestDockerRuntime_UpCreatesContainer(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("docker inspect", nil, errors.New("No such container"))
	r := newTestRuntime(exec)

	cfg := Config{
		Name:        "patchctl-audio",
		Image:       "studio-audio:latest",
		PulseSocket: "/run/user/1000/pulse/native",
		SoundDevice: "/dev/snd",
		ExtraBinds:  []string{"/home/u/sf2:/sf2:ro"},
		Env:         map[string]string{"FLUID_GAIN": "0.8"},
	}

	if err := r.Up(context.Background(), cfg); err != nil {
		t.Fatalf("Up() error: %v", err)
	}

	cmd, ok := exec.LastCommand()
	if !ok || cmd.Args[0] != "run" {
		t.Fatalf("last command = %v, want docker run", cmd)
	}

	argv := strings.Join(cmd.Args, " ")
	for _, want := range []string{
		"--name patchctl-audio",
		"--device /dev/snd",
		"-v /run/user/1000/pulse/native:" + PulseMountPath,
		"-e PULSE_SERVER=unix:" + PulseMountPath,
		"-v /home/u/sf2:/sf2:ro",
		"-e FLUID_GAIN=0.8",
		"studio-audio:latest",
	} {
		if !strings.Contains(argv, want) {
			t.Errorf("run args missing %q: %s", want, argv)
		}
	}
}

func TestDockerRuntime_UpRestartsStopped(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("docker inspect", []byte(inspectStopped), nil)
	r := newTestRuntime(exec)

	if err := r.Up(context.Background(), DefaultConfig()); err != nil {
		t.Fatalf("Up() error: %v", err)
	}

	cmd, _ := exec.LastCommand()
	if cmd.Args[0] != "start" {
		t.Errorf("stopped container should be started, got %v", cmd.Args)
	}
}

func TestDockerRuntime_UpNoopWhenRunning(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("docker inspect", []byte(inspectRunning), nil)
	r := newTestRuntime(exec)

	if err := r.Up(context.Background(), DefaultConfig()); err != nil {
		t.Fatalf("Up() error: %v", err)
	}

	if exec.CommandCount() != 1 {
		t.Errorf("running container should only be inspected, got %d commands", exec.CommandCount())
	}
}

func TestDockerRuntime_Status(t *testing.T) {
	tests := []struct {
		name    string
		output  []byte
		err     error
		want    Status
	}{
		{"running", []byte(inspectRunning), nil, StatusRunning},
		{"stopped", []byte(inspectStopped), nil, StatusStopped},
		{"missing", []byte("No such container"), errors.New("exit status 1"), StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := system.NewMockExecutor()
			exec.AddResponse("docker inspect", tt.output, tt.err)
			r := newTestRuntime(exec)

			info, err := r.Status(context.Background(), "patchctl-audio")
			if err != nil {
				t.Fatalf("Status() error: %v", err)
			}
			if info.Status != tt.want {
				t.Errorf("Status = %q, want %q", info.Status, tt.want)
			}
		})
	}
}

func TestDockerRuntime_Down(t *testing.T) {
	exec := system.NewMockExecutor()
	r := newTestRuntime(exec)

	if err := r.Down(context.Background(), "patchctl-audio"); err != nil {
		t.Fatalf("Down() error: %v", err)
	}

	cmd, _ := exec.LastCommand()
	if cmd.Args[0] != "rm" {
		t.Errorf("last command = %v, want docker rm", cmd.Args)
	}
}

func TestDockerRuntime_Shell(t *testing.T) {
	exec := system.NewMockExecutor()
	r := newTestRuntime(exec)

	// The mock cannot actually replace the process; only the argv matters.
	_ = r.Shell("patchctl-audio", []string{"sh", "-lc", "fluidsynth"})

	cmd, _ := exec.LastCommand()
	argv := strings.Join(cmd.Args, " ")
	if !strings.HasPrefix(argv, "exec -it patchctl-audio") {
		t.Errorf("shell argv = %s", argv)
	}
	if !strings.Contains(argv, "fluidsynth") {
		t.Errorf("shell argv should carry the command: %s", argv)
	}
}
