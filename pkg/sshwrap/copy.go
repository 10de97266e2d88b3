package sshwrap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
	"github.com/NetAngels/openssh-wrapper/internal/util"
)

// CopyOptions tweaks a single Copy invocation.
type CopyOptions struct {
	// Mode, when set, is applied to every uploaded file with a remote
	// chmod (any form chmod understands, e.g. "0644").
	Mode string
	// Owner, when set, is applied with a remote chown (e.g.
	// "user:group"). Only makes sense when connected as root.
	Owner string
}

// Copy transfers the sources to the remote target via scp. Target may
// be a remote directory, or a file path when exactly one source is
// given. The call blocks until scp finishes or the connection's
// timeout elapses.
func (c *Connection) Copy(ctx context.Context, sources []Source, target string) error {
	return c.CopyWith(ctx, sources, target, CopyOptions{})
}

// CopyWith is Copy with optional remote chmod/chown post-processing.
// Any temporary directory created for stream sources is removed on
// every exit path before an error reaches the caller.
func (c *Connection) CopyWith(ctx context.Context, sources []Source, target string, opts CopyOptions) error {
	paths, tmpDir, err := materializeSources(sources)
	if err != nil {
		return err
	}
	if tmpDir != "" {
		defer os.RemoveAll(tmpDir)
	}

	argv, err := c.CopyCommand(paths, target)
	if err != nil {
		return err
	}

	copyCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Unlike Run, nothing is written to scp's stdin.
	c.log.Debug("copy %v", argv)
	_, stderr, exitCode, runErr := c.runner.Run(copyCtx, argv, nil, c.environ())

	if ctxErr := copyCtx.Err(); ctxErr != nil {
		if ctxErr == context.DeadlineExceeded {
			return errors.New(errors.ErrTransfer,
				fmt.Sprintf("Transfer timed out after %s", c.timeout),
				"Raise the connection timeout for large transfers")
		}
		return errors.WrapWithCode(ctxErr, errors.ErrTransfer,
			"Transfer was canceled", "")
	}
	if runErr != nil {
		return errors.WrapWithCode(runErr, errors.ErrTransfer,
			"Couldn't run "+c.scpPath,
			"Check the scp binary exists and is executable")
	}
	if exitCode != 0 {
		return errors.New(errors.ErrTransfer,
			string(bytes.TrimSpace(stderr)), "")
	}

	if opts.Mode == "" && opts.Owner == "" {
		return nil
	}

	targets, err := c.copyTargets(ctx, paths, target)
	if err != nil {
		return err
	}
	if opts.Mode != "" {
		if err := c.postProcess(ctx, "chmod", opts.Mode, targets); err != nil {
			return err
		}
	}
	if opts.Owner != "" {
		if err := c.postProcess(ctx, "chown", opts.Owner, targets); err != nil {
			return err
		}
	}
	return nil
}

// copyTargets resolves where the transferred files ended up on the
// remote side. When target is an existing remote directory (probed
// with test -d) each source basename is joined under it; otherwise
// target itself is the single destination.
func (c *Connection) copyTargets(ctx context.Context, paths []string, target string) ([]string, error) {
	result, err := c.Run(ctx, "test -d "+util.ShellQuote(target))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPostProcess,
			"Couldn't inspect the remote target "+target, "")
	}
	if !result.Success() {
		return []string{target}, nil
	}

	targets := make([]string, len(paths))
	for i, p := range paths {
		targets[i] = path.Join(target, filepath.Base(p))
	}
	return targets, nil
}

// postProcess runs a remote chmod/chown over the transferred files.
// The remote shell accepts a single string, so this is the one place a
// command string is assembled — with every token quoted individually.
func (c *Connection) postProcess(ctx context.Context, program, arg string, targets []string) error {
	command := util.ShellJoin(append([]string{program, arg}, targets...))
	result, err := c.Run(ctx, command)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPostProcess,
			"Remote "+program+" failed", "")
	}
	if !result.Success() {
		return errors.New(errors.ErrPostProcess, result.ErrText(), "")
	}
	return nil
}
