package sshwrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
	wraptest "github.com/NetAngels/openssh-wrapper/pkg/sshwrap/testing"
)

// fakeConnection builds a connection wired to a FakeRunner.
func fakeConnection(t *testing.T, opts Options) (*Connection, *wraptest.FakeRunner) {
	t.Helper()
	runner := wraptest.NewFakeRunner()
	opts.Runner = runner
	conn, err := NewConnection("localhost", opts)
	require.NoError(t, err)
	return conn, runner
}

func TestRunSuccess(t *testing.T) {
	conn, runner := fakeConnection(t, Options{Login: "root"})
	runner.Default = wraptest.Response{Stdout: []byte("root\n")}

	result, err := conn.Run(context.Background(), "whoami")
	require.NoError(t, err)

	assert.Equal(t, "whoami", result.Command)
	assert.Equal(t, []byte("root"), result.Stdout)
	assert.Empty(t, result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success())
}

func TestRunWritesCommandToStdin(t *testing.T) {
	conn, runner := fakeConnection(t, Options{})

	_, err := conn.Run(context.Background(), "echo hello")
	require.NoError(t, err)

	call := runner.LastCall()
	assert.Equal(t, []byte("echo hello"), call.Stdin)
	assert.Equal(t, []string{DefaultSSHPath, "localhost", DefaultInterpreter}, call.Argv)
}

func TestRunWithInterpreter(t *testing.T) {
	conn, runner := fakeConnection(t, Options{})

	_, err := conn.RunWith(context.Background(), "print('hi')", RunOptions{
		Interpreter:  "/usr/bin/python",
		ForwardAgent: true,
	})
	require.NoError(t, err)

	call := runner.LastCall()
	assert.Equal(t, []string{DefaultSSHPath, "-A", "localhost", "/usr/bin/python"}, call.Argv)
}

func TestRunNonzeroExitIsNotAnError(t *testing.T) {
	conn, runner := fakeConnection(t, Options{})
	runner.Default = wraptest.Response{Stderr: []byte("grep: no match\n"), ExitCode: 1}

	result, err := conn.Run(context.Background(), "grep needle haystack")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExitCode)
	assert.False(t, result.Success())
	assert.Equal(t, "grep: no match", result.ErrText())
}

func TestRunExit255IsConnectionError(t *testing.T) {
	conn, runner := fakeConnection(t, Options{})
	runner.Default = wraptest.Response{
		Stderr:   []byte("Permission denied (publickey).\n"),
		ExitCode: ExitConnectionFailure,
	}

	_, err := conn.Run(context.Background(), "whoami")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConnection))
	assert.Contains(t, err.Error(), "Permission denied (publickey).")
}

func TestRunTimeout(t *testing.T) {
	conn, runner := fakeConnection(t, Options{Timeout: 50 * time.Millisecond})
	runner.Default = wraptest.Response{Block: true}

	start := time.Now()
	_, err := conn.Run(context.Background(), "sleep 60")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConnection))
	assert.Contains(t, err.Error(), "timed out")
	// The call returns near the configured timeout, not after the
	// remote command would have finished.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRunHonorsCallerCancellation(t *testing.T) {
	conn, runner := fakeConnection(t, Options{Timeout: time.Minute})
	runner.Default = wraptest.Response{Block: true}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := conn.Run(ctx, "sleep 60")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConnection))
}

func TestRunPassesAgentSocket(t *testing.T) {
	conn, runner := fakeConnection(t, Options{AgentSocket: "/tmp/custom.sock"})

	_, err := conn.Run(context.Background(), "true")
	require.NoError(t, err)

	env := runner.LastCall().Env
	require.NotEmpty(t, env)
	assert.Equal(t, "SSH_AUTH_SOCK=/tmp/custom.sock", env[len(env)-1])
}

func TestRunTrimsOutput(t *testing.T) {
	conn, runner := fakeConnection(t, Options{})
	runner.Default = wraptest.Response{
		Stdout: []byte("  out \n\n"),
		Stderr: []byte("\nerr\t\n"),
	}

	result, err := conn.Run(context.Background(), "true")
	require.NoError(t, err)
	assert.Equal(t, "out", result.Text())
	assert.Equal(t, "err", result.ErrText())
}

func TestRunKeepsDeadlinesIndependent(t *testing.T) {
	// Two sequential calls on the same connection each get their own
	// deadline; the first call's expiry must not poison the second.
	conn, runner := fakeConnection(t, Options{Timeout: 50 * time.Millisecond})
	runner.RespondPattern("ssh", wraptest.Response{Stdout: []byte("ok")})

	for i := 0; i < 2; i++ {
		result, err := conn.Run(context.Background(), "true")
		require.NoError(t, err)
		assert.Equal(t, "ok", result.Text())
	}
}
