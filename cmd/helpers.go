package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/profile"
	"github.com/microtonal-studio/patchctl/internal/session"
	"github.com/microtonal-studio/patchctl/internal/system"
)

// profileStore returns the profile store over the user's config directory.
func profileStore() *profile.Store {
	return profile.NewStore(system.DefaultFS(), profile.DefaultConfigDir())
}

// sessionConfig loads the session container config, defaults included.
func sessionConfig() (session.Config, error) {
	cfg, err := session.LoadConfig(system.DefaultFS(), profile.DefaultConfigDir())
	if err != nil {
		return session.Config{}, errors.ConfigError("loading session config", err)
	}
	return cfg, nil
}

// newSessionRuntime builds the container runtime. Tests swap it for a
// session.MockRuntime.
var newSessionRuntime = func() (session.Runtime, error) {
	return session.NewDockerRuntime(system.DefaultExecutor())
}

// sessionRuntime detects the container engine and wires it to the default
// executor.
func sessionRuntime() (session.Runtime, error) {
	rt, err := newSessionRuntime()
	if err != nil {
		return nil, errors.ContainerFailed("runtime detection", err)
	}
	return rt, nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM. Used by
// the long-running tool commands so ctrl-C shuts them down cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
