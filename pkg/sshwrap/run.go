package sshwrap

import (
	"bytes"
	"context"
	"fmt"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
)

// ExitConnectionFailure is the exit code the ssh binary reserves for
// its own failures (unreachable host, refused key, broken config).
// Everything else belongs to the remote command.
const ExitConnectionFailure = 255

// RunOptions tweaks a single Run invocation.
type RunOptions struct {
	// Interpreter is the remote program that receives the command text
	// on its stdin. Empty means DefaultInterpreter.
	Interpreter string
	// ForwardAgent adds -A to the ssh invocation.
	ForwardAgent bool
}

// Run executes the command on the remote host through the default
// interpreter, roughly:
//
//	echo "command" | ssh login@host /bin/bash
//
// The call blocks until the remote command finishes or the
// connection's timeout elapses. On timeout the child process is
// killed and a CONNECT error is returned; ssh exiting 255 is likewise
// a CONNECT error carrying the trimmed stderr. Any other exit code,
// zero or not, comes back as a Result for the caller to judge.
func (c *Connection) Run(ctx context.Context, command string) (*Result, error) {
	return c.RunWith(ctx, command, RunOptions{})
}

// RunWith is Run with an explicit interpreter and agent forwarding.
func (c *Connection) RunWith(ctx context.Context, command string, opts RunOptions) (*Result, error) {
	interpreter := opts.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	argv := c.RunCommand(interpreter, opts.ForwardAgent)

	// The deadline is scoped to this invocation only; cancel releases
	// it on every exit path so it can never leak into a later call.
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debug("run %v (command %d bytes)", argv, len(command))
	stdout, stderr, exitCode, err := c.runner.Run(runCtx, argv, []byte(command), c.environ())

	if ctxErr := runCtx.Err(); ctxErr != nil {
		if ctxErr == context.DeadlineExceeded {
			return nil, errors.New(errors.ErrConnection,
				fmt.Sprintf("Command timed out after %s", c.timeout),
				"Raise the connection timeout if the command legitimately runs long")
		}
		return nil, errors.WrapWithCode(ctxErr, errors.ErrConnection,
			"Command was canceled", "")
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConnection,
			"Couldn't run "+c.sshPath,
			"Check the ssh binary exists and is executable")
	}
	if exitCode == ExitConnectionFailure {
		return nil, errors.New(errors.ErrConnection,
			string(bytes.TrimSpace(stderr)), "")
	}

	return &Result{
		Command:  command,
		Stdout:   bytes.TrimSpace(stdout),
		Stderr:   bytes.TrimSpace(stderr),
		ExitCode: exitCode,
	}, nil
}
