package session

import (
	"context"
	"sync"
)

// MockRuntime implements Runtime for testing.
type MockRuntime struct {
	mu sync.Mutex

	// Containers maps container name to status.
	Containers map[string]Status

	// Calls records method invocations in order.
	Calls []string

	// UpErr, DownErr and ShellErr are returned by the matching methods
	// when set.
	UpErr    error
	DownErr  error
	ShellErr error
}

// NewMockRuntime creates a MockRuntime with no containers.
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{Containers: make(map[string]Status)}
}

func (m *MockRuntime) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockRuntime) Name() string { return "mock" }

func (m *MockRuntime) Up(ctx context.Context, cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("up " + cfg.Name)
	if m.UpErr != nil {
		return m.UpErr
	}
	m.Containers[cfg.Name] = StatusRunning
	return nil
}

func (m *MockRuntime) Down(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("down " + name)
	if m.DownErr != nil {
		return m.DownErr
	}
	delete(m.Containers, name)
	return nil
}

func (m *MockRuntime) IsRunning(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Containers[name] == StatusRunning, nil
}

func (m *MockRuntime) Status(ctx context.Context, name string) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.Containers[name]
	if !ok {
		status = StatusNotFound
	}
	return &Info{Name: name, Status: status}, nil
}

func (m *MockRuntime) Shell(name string, command []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("shell " + name)
	return m.ShellErr
}

var _ Runtime = (*MockRuntime)(nil)
