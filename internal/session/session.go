// Package session manages the studio's audio container: the container that
// runs the synth stack with the host's PulseAudio socket and sound device
// bind-mounted in. patchctl drives it through the container engine's CLI;
// the engine itself is an external collaborator.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/microtonal-studio/patchctl/internal/system"
)

const (
	// DefaultContainerName is the session container's name.
	DefaultContainerName = "patchctl-audio"

	// DefaultImage is the audio stack image used when config does not
	// name one.
	DefaultImage = "ghcr.io/microtonal-studio/studio-audio:latest"

	// PulseMountPath is where the host pulse socket lands in the container.
	PulseMountPath = "/tmp/pulse-native"
)

// Config describes the audio session container.
type Config struct {
	Name        string            `toml:"name"`
	Image       string            `toml:"image"`
	PulseSocket string            `toml:"pulse_socket"`
	SoundDevice string            `toml:"sound_device"`
	ExtraBinds  []string          `toml:"extra_binds"`
	Env         map[string]string `toml:"env"`
}

// DefaultConfig returns the session config for the current user: the
// standard container name and image, the user's pulse socket, and the ALSA
// device directory.
func DefaultConfig() Config {
	return Config{
		Name:        DefaultContainerName,
		Image:       DefaultImage,
		PulseSocket: fmt.Sprintf("/run/user/%d/pulse/native", os.Getuid()),
		SoundDevice: "/dev/snd",
	}
}

// sessionFile is the on-disk shape of config.toml.
type sessionFile struct {
	Session Config `toml:"session"`
}

// LoadConfig reads the session section of <configDir>/config.toml, layered
// over the defaults. A missing file just yields the defaults.
func LoadConfig(fs system.FileSystem, configDir string) (Config, error) {
	cfg := DefaultConfig()
	if configDir == "" {
		return cfg, nil
	}

	path := filepath.Join(configDir, "config.toml")
	if !fs.Exists(path) {
		return cfg, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	file := sessionFile{Session: cfg}
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	merged := file.Session
	if merged.Name == "" {
		merged.Name = cfg.Name
	}
	if merged.Image == "" {
		merged.Image = cfg.Image
	}
	if merged.PulseSocket == "" {
		merged.PulseSocket = cfg.PulseSocket
	}
	if merged.SoundDevice == "" {
		merged.SoundDevice = cfg.SoundDevice
	}
	return merged, nil
}

// Status represents the state of the session container.
type Status string

const (
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
	StatusNotFound Status = "not-found"
	StatusUnknown  Status = "unknown"
)

// Info holds status details for the session container.
type Info struct {
	Name      string
	Status    Status
	StartedAt string
	Image     string
}

// Runtime is the interface container engines implement.
type Runtime interface {
	// Name returns the engine command (docker or podman).
	Name() string

	// Up creates and starts the session container. An existing stopped
	// container is restarted rather than recreated.
	Up(ctx context.Context, cfg Config) error

	// Down stops and removes the session container.
	Down(ctx context.Context, name string) error

	// IsRunning reports whether the container is currently running.
	IsRunning(ctx context.Context, name string) (bool, error)

	// Status returns detailed container status.
	Status(ctx context.Context, name string) (*Info, error)

	// Shell replaces the current process with an interactive command in
	// the container.
	Shell(name string, command []string) error
}
