package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/microtonal-studio/patchctl/internal/logging"
	"github.com/microtonal-studio/patchctl/internal/system"
)

// DockerRuntime implements Runtime using Docker or Podman.
// It auto-detects which container engine is available.
type DockerRuntime struct {
	// Command is the container command to use (docker or podman)
	Command string

	exec system.CommandExecutor
}

// NewDockerRuntime creates a Docker/Podman runtime.
// It auto-detects which command is available.
func NewDockerRuntime(executor system.CommandExecutor) (*DockerRuntime, error) {
	// Try podman first (preferred for rootless)
	if _, err := exec.LookPath("podman"); err == nil {
		return &DockerRuntime{Command: "podman", exec: executor}, nil
	}

	if _, err := exec.LookPath("docker"); err == nil {
		return &DockerRuntime{Command: "docker", exec: executor}, nil
	}

	return nil, fmt.Errorf("neither podman nor docker found in PATH")
}

// Name returns the engine command.
func (r *DockerRuntime) Name() string {
	return r.Command
}

// runCmd executes a docker/podman command
func (r *DockerRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	out, err := r.exec.Execute(ctx, r.Command, args...)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", r.Command, args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// Up creates and starts the session container with the pulse socket and
// sound device mounted in. A stopped container with the same name is
// restarted instead of recreated.
func (r *DockerRuntime) Up(ctx context.Context, cfg Config) error {
	info, err := r.Status(ctx, cfg.Name)
	if err != nil {
		return err
	}

	switch info.Status {
	case StatusRunning:
		logging.Debug("session container already running", "name", cfg.Name)
		return nil
	case StatusStopped:
		logging.Debug("restarting session container", "name", cfg.Name)
		_, err := r.runCmd(ctx, "start", cfg.Name)
		return err
	}

	logging.Debug("creating session container", "name", cfg.Name, "image", cfg.Image, "runtime", r.Command)

	args := []string{"run", "-d", "--name", cfg.Name}

	if cfg.SoundDevice != "" {
		args = append(args, "--device", cfg.SoundDevice)
	}
	if cfg.PulseSocket != "" {
		args = append(args, "-v", cfg.PulseSocket+":"+PulseMountPath)
		args = append(args, "-e", "PULSE_SERVER=unix:"+PulseMountPath)
	}
	for _, bind := range cfg.ExtraBinds {
		args = append(args, "-v", bind)
	}

	// Sorted for a stable argv
	envKeys := make([]string, 0, len(cfg.Env))
	for k := range cfg.Env {
		envKeys = append(envKeys, k)
	}
	sort.Strings(envKeys)
	for _, k := range envKeys {
		args = append(args, "-e", k+"="+cfg.Env[k])
	}

	args = append(args, cfg.Image)

	_, err = r.runCmd(ctx, args...)
	return err
}

// Down stops and removes the session container.
func (r *DockerRuntime) Down(ctx context.Context, name string) error {
	logging.Debug("removing session container", "name", name)

	// Stop first (ignore errors if already stopped)
	_, _ = r.runCmd(ctx, "stop", name)

	_, err := r.runCmd(ctx, "rm", "-f", name)
	if err != nil && strings.Contains(err.Error(), "No such container") {
		return nil
	}
	return err
}

// IsRunning checks if the session container is currently running.
func (r *DockerRuntime) IsRunning(ctx context.Context, name string) (bool, error) {
	output, err := r.runCmd(ctx, "inspect", "-f", "{{.State.Running}}", name)
	if err != nil {
		return false, nil // Container doesn't exist
	}
	return strings.TrimSpace(output) == "true", nil
}

// dockerInspect holds the relevant fields from docker inspect
type dockerInspect struct {
	State struct {
		Status    string `json:"Status"`
		Running   bool   `json:"Running"`
		StartedAt string `json:"StartedAt"`
	} `json:"State"`
	Config struct {
		Image string `json:"Image"`
	} `json:"Config"`
}

// Status returns detailed status of the session container.
func (r *DockerRuntime) Status(ctx context.Context, name string) (*Info, error) {
	info := &Info{
		Name:   name,
		Status: StatusNotFound,
	}

	output, err := r.runCmd(ctx, "inspect", name)
	if err != nil {
		return info, nil
	}

	var inspects []dockerInspect
	if err := json.Unmarshal([]byte(output), &inspects); err != nil {
		return info, nil
	}
	if len(inspects) == 0 {
		return info, nil
	}

	inspect := inspects[0]
	switch inspect.State.Status {
	case "running":
		info.Status = StatusRunning
	case "exited", "stopped", "created":
		info.Status = StatusStopped
	default:
		info.Status = StatusUnknown
	}

	info.StartedAt = inspect.State.StartedAt
	info.Image = inspect.Config.Image

	return info, nil
}

// Shell replaces the current process with an interactive command in the
// session container.
func (r *DockerRuntime) Shell(name string, command []string) error {
	args := append([]string{"exec", "-it", name}, command...)
	return r.exec.ReplaceProcess(r.Command, args...)
}

var _ Runtime = (*DockerRuntime)(nil)
