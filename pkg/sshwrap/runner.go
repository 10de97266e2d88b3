package sshwrap

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"time"
)

// Runner abstracts external process execution so tests can intercept
// the spawned ssh/scp invocations without touching the network.
type Runner interface {
	// Run spawns argv[0] with the remaining arguments, writes stdin (if
	// non-nil) to the child's input stream and closes it, and blocks
	// until the child exits or ctx is done. When ctx fires first the
	// child is forcibly terminated. Exit code is -1 when the process
	// could not be run at all or was killed; a nonzero exit with nil
	// error means the process ran and failed on its own terms.
	Run(ctx context.Context, argv []string, stdin []byte, env []string) (stdout, stderr []byte, exitCode int, err error)
}

// waitDelay bounds how long Wait may linger after the context fires
// when a killed child's pipes are still held open by a grandchild.
const waitDelay = 5 * time.Second

// execRunner is the os/exec-backed Runner used outside of tests.
type execRunner struct{}

// NewExecRunner returns the Runner that spawns real processes.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, argv []string, stdin []byte, env []string) (stdout, stderr []byte, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = env
	cmd.WaitDelay = waitDelay
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) {
			// The process ran and exited nonzero (or was killed when
			// the deadline fired, which the caller detects via ctx).
			return outBuf.Bytes(), errBuf.Bytes(), exitErr.ExitCode(), nil
		}
		return outBuf.Bytes(), errBuf.Bytes(), -1, runErr
	}

	return outBuf.Bytes(), errBuf.Bytes(), 0, nil
}
