// Package runner executes external commands inside the target environment.
//
// A non-zero exit status is the only failure signal: it is reported as an
// error carrying errors.ErrCommandFailed, with the command line, exit code
// and the tail of the combined output as details. Output is never parsed.
package runner

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/kballard/go-shellquote"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/logging"
)

// maxOutputDetail bounds the output kept in error details.
const maxOutputDetail = 4096

// Runner runs one external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as subprocesses. When Root names a directory other
// than "/", commands are run through chroot so they act on the target system.
type ExecRunner struct {
	Root string
}

// NewExecRunner returns a runner for the system mounted at root.
func NewExecRunner(root string) *ExecRunner {
	return &ExecRunner{Root: root}
}

// Run executes name with args and waits for it.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	argv := r.argv(name, args)
	logging.LogCommand(argv[0], argv[1:])

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()

	logger := logging.GetLogger("runner")
	if len(output) > 0 {
		logger.Trace().Str("command", argv[0]).Bytes("output", output).Msg("Command output")
	}

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	line := shellquote.Join(argv...)
	exitCode := -1
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	logger.Debug().Str("command", line).Int("exit_code", exitCode).Msg("Command failed")
	return errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", line).
		WithDetail("command", line).
		WithDetail("exit_code", exitCode).
		WithDetail("output", tail(output, maxOutputDetail))
}

func (r *ExecRunner) argv(name string, args []string) []string {
	argv := make([]string, 0, len(args)+3)
	if r.Root != "" && r.Root != "/" {
		argv = append(argv, "chroot", r.Root)
	}
	argv = append(argv, name)
	return append(argv, args...)
}

// DryRunner logs commands instead of running them.
type DryRunner struct{}

// Run logs the command and reports success.
func (DryRunner) Run(_ context.Context, name string, args ...string) error {
	logger := logging.GetLogger("runner")
	logger.Info().
		Str("command", shellquote.Join(append([]string{name}, args...)...)).
		Msg("Would run")
	return nil
}

// SplitScript splits a hook script into an argv, honoring shell quoting.
// Unbalanced quotes fall back to whitespace splitting.
func SplitScript(script string) []string {
	if toks, err := shellquote.Split(script); err == nil {
		return toks
	}
	return strings.Fields(script)
}

// RunScript runs a hook script through r. Blank scripts are a no-op.
func RunScript(ctx context.Context, r Runner, script string) error {
	argv := SplitScript(script)
	if len(argv) == 0 {
		return nil
	}
	return r.Run(ctx, argv[0], argv[1:]...)
}

// ExitCode returns the exit code recorded on a command failure, or -1.
func ExitCode(err error) int {
	if !errors.IsErrorCode(err, errors.ErrCommandFailed) {
		return -1
	}
	if code, ok := errors.GetErrorDetails(err)["exit_code"].(int); ok {
		return code
	}
	return -1
}

// tail keeps at most the last n bytes of output, starting on a rune
// boundary.
func tail(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
