package audit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// CommandRunner runs one external process to completion. A non-zero exit is
// reported through exitCode with a nil error; err is set only when the process
// could not be started or was stopped by ctx.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, env []string) (stdout, stderr []byte, exitCode int, err error)
}

// ExecRunner runs commands with os/exec, buffering both output streams.
type ExecRunner struct {
	// WaitDelay bounds how long Wait blocks on output pipes after the process
	// is killed, since the audit tool leaves browser children holding them.
	WaitDelay time.Duration
}

// NewExecRunner creates a runner with a short pipe drain delay
func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: 5 * time.Second}
}

// Run executes name with args and the current environment extended by env.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, env []string) ([]byte, []byte, int, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.WaitDelay
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.Bytes(), stderr.Bytes(), -1, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return stdout.Bytes(), stderr.Bytes(), -1, err
	}
	return stdout.Bytes(), stderr.Bytes(), 0, nil
}
