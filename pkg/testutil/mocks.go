package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/types"
)

// MockRunner is a testify mock of runner.Runner. Each call is matched on a
// single argument: the full argv.
type MockRunner struct {
	mock.Mock
}

// Run records name and args as one []string argument.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	ret := m.Called(append([]string{name}, args...))
	return ret.Error(0)
}

// Argvs returns the recorded commands in call order.
func (m *MockRunner) Argvs() [][]string {
	out := make([][]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.Arguments.Get(0).([]string))
	}
	return out
}

// MockBackend is a testify mock of backend.Backend.
type MockBackend struct {
	mock.Mock
	BackendName string
}

// Name returns BackendName, or "mock".
func (m *MockBackend) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

// Install records the call.
func (m *MockBackend) Install(ctx context.Context, names []string, fromLocal bool) error {
	return m.Called(names, fromLocal).Error(0)
}

// Remove records the call.
func (m *MockBackend) Remove(ctx context.Context, names []string) error {
	return m.Called(names).Error(0)
}

// UpdateDB records the call.
func (m *MockBackend) UpdateDB(ctx context.Context) error {
	return m.Called().Error(0)
}

// UpdateSystem records the call.
func (m *MockBackend) UpdateSystem(ctx context.Context) error {
	return m.Called().Error(0)
}

// RunHook records non-empty scripts only, mirroring the real backends.
func (m *MockBackend) RunHook(ctx context.Context, script string) error {
	if script == "" {
		return nil
	}
	return m.Called(script).Error(0)
}

// MockRecorder keeps recorded outcomes in memory.
type MockRecorder struct {
	Outcomes []types.Outcome
	Err      error
}

// Record appends o and returns Err.
func (m *MockRecorder) Record(ctx context.Context, o types.Outcome) error {
	m.Outcomes = append(m.Outcomes, o)
	return m.Err
}

// CommandFailed returns an error shaped like a failed external command.
func CommandFailed(command string) error {
	return errors.New(errors.ErrCommandFailed, "command failed: "+command).
		WithDetail("command", command).
		WithDetail("exit_code", 1)
}
