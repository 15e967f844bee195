package cmd

import (
	"testing"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/session"
	"github.com/microtonal-studio/patchctl/internal/system"
)

// withMockRuntime swaps the session runtime factory for a MockRuntime for
// the duration of one test.
func withMockRuntime(t *testing.T) *session.MockRuntime {
	t.Helper()

	mock := session.NewMockRuntime()
	orig := newSessionRuntime
	newSessionRuntime = func() (session.Runtime, error) {
		return mock, nil
	}
	t.Cleanup(func() { newSessionRuntime = orig })

	// Empty filesystem so any config.toml on the host cannot leak in.
	system.SetDefaultFS(system.NewMockFS())
	t.Cleanup(system.ResetDefaults)

	return mock
}

func TestRunUp(t *testing.T) {
	mock := withMockRuntime(t)

	if err := runUp(upCmd, nil); err != nil {
		t.Fatalf("runUp failed: %v", err)
	}

	if mock.Containers[session.DefaultContainerName] != session.StatusRunning {
		t.Errorf("container %s not running after up", session.DefaultContainerName)
	}
	if len(mock.Calls) != 1 || mock.Calls[0] != "up "+session.DefaultContainerName {
		t.Errorf("Calls = %v, want one up call", mock.Calls)
	}
}

func TestRunUp_RuntimeError(t *testing.T) {
	mock := withMockRuntime(t)
	mock.UpErr = errors.New(1, "engine exploded")

	err := runUp(upCmd, nil)
	if errors.GetExitCode(err) != errors.ExitContainerFailed {
		t.Errorf("exit code = %d, want ExitContainerFailed", errors.GetExitCode(err))
	}
}

func TestRunDown(t *testing.T) {
	mock := withMockRuntime(t)
	mock.Containers[session.DefaultContainerName] = session.StatusRunning

	if err := runDown(downCmd, nil); err != nil {
		t.Fatalf("runDown failed: %v", err)
	}

	if _, ok := mock.Containers[session.DefaultContainerName]; ok {
		t.Error("container still present after down")
	}
}

func TestRunStatus(t *testing.T) {
	mock := withMockRuntime(t)
	mock.Containers[session.DefaultContainerName] = session.StatusRunning

	if err := runStatus(statusCmd, nil); err != nil {
		t.Fatalf("runStatus failed: %v", err)
	}
}

func TestRunShell_NotRunning(t *testing.T) {
	withMockRuntime(t)

	err := runShell(shellCmd, nil)
	if err == nil {
		t.Fatal("expected error for shell into a stopped session")
	}
	if errors.GetExitCode(err) != errors.ExitGeneralError {
		t.Errorf("exit code = %d, want ExitGeneralError", errors.GetExitCode(err))
	}
}

func TestRunShell_Running(t *testing.T) {
	mock := withMockRuntime(t)
	mock.Containers[session.DefaultContainerName] = session.StatusRunning

	if err := runShell(shellCmd, []string{"aplay", "-l"}); err != nil {
		t.Fatalf("runShell failed: %v", err)
	}
	if len(mock.Calls) != 1 || mock.Calls[0] != "shell "+session.DefaultContainerName {
		t.Errorf("Calls = %v, want one shell call", mock.Calls)
	}
}
