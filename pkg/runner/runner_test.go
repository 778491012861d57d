package runner

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/testutil"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	return m.Called(append([]string{name}, args...)).Error(0)
}

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner("")
	assert.NoError(t, r.Run(context.Background(), "true"))
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := NewExecRunner("/")

	err := r.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, 3, ExitCode(err))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, "boom", details["output"])
	assert.Contains(t, details["command"], "exit 3")
}

func TestExecRunner_MissingBinaryIsCommandFailure(t *testing.T) {
	r := NewExecRunner("")

	err := r.Run(context.Background(), "/nonexistent/packops-helper")

	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, -1, ExitCode(err))
}

func TestExecRunner_CancelledContextIsNotCommandFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExecRunner("").Run(ctx, "sleep", "5")

	require.Error(t, err)
	assert.False(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecRunner_ChrootPrefix(t *testing.T) {
	assert.Equal(t, []string{"pacman", "-Sy"}, NewExecRunner("").argv("pacman", []string{"-Sy"}))
	assert.Equal(t, []string{"pacman", "-Sy"}, NewExecRunner("/").argv("pacman", []string{"-Sy"}))
	assert.Equal(t,
		[]string{"chroot", "/mnt/target", "pacman", "-Sy"},
		NewExecRunner("/mnt/target").argv("pacman", []string{"-Sy"}))
}

func TestSplitScript(t *testing.T) {
	assert.Equal(t, []string{"systemctl", "enable", "sddm"}, SplitScript("systemctl enable sddm"))
	assert.Equal(t, []string{"sh", "-c", "echo hi > /tmp/x"}, SplitScript(`sh -c "echo hi > /tmp/x"`))
	assert.Equal(t, []string{"echo", `"unbalanced`}, SplitScript(`echo "unbalanced`))
	assert.Empty(t, SplitScript("   "))
}

func TestRunScript(t *testing.T) {
	r := &mockRunner{}
	r.On("Run", []string{"systemctl", "enable", "sddm"}).Return(nil).Once()

	require.NoError(t, RunScript(context.Background(), r, "systemctl enable sddm"))
	require.NoError(t, RunScript(context.Background(), r, ""))

	r.AssertExpectations(t)
	r.AssertNumberOfCalls(t, "Run", 1)
}

func TestDryRunner_LogsInsteadOfRunning(t *testing.T) {
	buf := testutil.CaptureLogs(t)

	require.NoError(t, DryRunner{}.Run(context.Background(), "pacman", "-Rs", "vim"))

	lines := testutil.LogLines(buf, "info")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Would run")
	assert.Contains(t, lines[0], "pacman -Rs vim")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail([]byte("  short\n"), 10))
	assert.Equal(t, "world", tail([]byte("hello world"), 5))

	// "é" is two bytes; a cut inside it moves forward to the next rune.
	got := tail([]byte("aé b"), 3)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, " b", got)
	assert.Equal(t, "é b", tail([]byte("aé b"), 4))
}

func TestExitCode_NonCommandError(t *testing.T) {
	assert.Equal(t, -1, ExitCode(errors.New(errors.ErrInternal, "x")))
	assert.Equal(t, -1, ExitCode(nil))
}
