package backend

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/packops/pkg/aur"
	"github.com/arthur-debert/packops/pkg/errors"
)

// mockRunner records every command as one argv slice.
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	ret := m.Called(append([]string{name}, args...))
	return ret.Error(0)
}

// argvs returns the recorded commands in call order.
func (m *mockRunner) argvs() [][]string {
	out := make([][]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.Arguments.Get(0).([]string))
	}
	return out
}

type mockMetadata struct {
	mock.Mock
}

func (m *mockMetadata) Info(ctx context.Context, name string) (*aur.Package, error) {
	ret := m.Called(name)
	pkg, _ := ret.Get(0).(*aur.Package)
	return pkg, ret.Error(1)
}

func commandFailed(line string) error {
	return errors.New(errors.ErrCommandFailed, "command failed: "+line).
		WithDetail("exit_code", 1)
}
