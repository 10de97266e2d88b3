package sshwrap

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesStreams(t *testing.T) {
	runner := NewExecRunner()

	stdout, stderr, code, err := runner.Run(context.Background(),
		[]string{"/bin/sh", "-c", "echo out; echo err >&2; exit 3"},
		nil, os.Environ())

	require.NoError(t, err, "nonzero exit is data, not an error")
	assert.Equal(t, 3, code)
	assert.Equal(t, "out\n", string(stdout))
	assert.Equal(t, "err\n", string(stderr))
}

func TestExecRunnerWritesStdin(t *testing.T) {
	runner := NewExecRunner()

	stdout, _, code, err := runner.Run(context.Background(),
		[]string{"/bin/sh"}, []byte("echo from-stdin"), os.Environ())

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "from-stdin\n", string(stdout))
}

func TestExecRunnerMissingBinary(t *testing.T) {
	runner := NewExecRunner()

	_, _, code, err := runner.Run(context.Background(),
		[]string{"/nonexistent/binary"}, nil, os.Environ())

	require.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestExecRunnerKillsOnDeadline(t *testing.T) {
	runner := NewExecRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, code, err := runner.Run(ctx,
		[]string{"/bin/sh", "-c", "sleep 30"}, nil, os.Environ())
	elapsed := time.Since(start)

	// The killed child surfaces as exit -1 with no spawn error; the
	// caller distinguishes timeout via the context.
	assert.NoError(t, err)
	assert.Equal(t, -1, code)
	assert.Equal(t, context.DeadlineExceeded, ctx.Err())
	assert.Less(t, elapsed, 10*time.Second, "child must be terminated, not awaited")
}

func TestExecRunnerPassesEnv(t *testing.T) {
	runner := NewExecRunner()

	env := append(os.Environ(), "SSH_AUTH_SOCK=/tmp/other.sock")
	stdout, _, code, err := runner.Run(context.Background(),
		[]string{"/bin/sh", "-c", "printf %s \"$SSH_AUTH_SOCK\""}, nil, env)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "/tmp/other.sock", string(stdout))
}
