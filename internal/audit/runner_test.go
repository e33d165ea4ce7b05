package audit

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	sh := requireShell(t)
	runner := NewExecRunner()

	stdout, stderr, code, err := runner.Run(context.Background(), sh,
		[]string{"-c", `printf '{"ok":true}'; printf 'warn' >&2; printf "$LHB_TEST"`},
		[]string{"LHB_TEST=env-passed"})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, `{"ok":true}env-passed`, string(stdout))
	assert.Equal(t, "warn", string(stderr))
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	sh := requireShell(t)
	runner := NewExecRunner()

	_, _, code, err := runner.Run(context.Background(), sh, []string{"-c", "exit 3"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestExecRunner_ContextDeadline(t *testing.T) {
	sh := requireShell(t)
	runner := &ExecRunner{WaitDelay: 100 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, code, err := runner.Run(ctx, sh, []string{"-c", "sleep 5"}, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, -1, code)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewExecRunner()

	_, _, code, err := runner.Run(context.Background(), "/nonexistent/lighthouse-binary", nil, nil)

	assert.Error(t, err)
	assert.Equal(t, -1, code)
}
