package sshwrap

import (
	"strconv"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
)

// RunCommand builds the argument vector that launches the remote
// interpreter. The flag order is fixed so output is deterministic:
//
//	ssh [-l login] [-F configfile] [-i identityfile] [-A] [-p port] host interpreter
//
// The command itself is never part of the vector; it is written to the
// interpreter's stdin by Run.
func (c *Connection) RunCommand(interpreter string, forwardAgent bool) []string {
	argv := []string{c.sshPath}
	if c.login != "" {
		argv = append(argv, "-l", c.login)
	}
	if c.configFile != "" {
		argv = append(argv, "-F", c.configFile)
	}
	if c.identityFile != "" {
		argv = append(argv, "-i", c.identityFile)
	}
	if forwardAgent {
		argv = append(argv, "-A")
	}
	if c.port != 0 {
		argv = append(argv, "-p", strconv.Itoa(c.port))
	}
	argv = append(argv, c.host, interpreter)
	return argv
}

// CopyCommand builds the argument vector that transfers the named
// local files to the remote target:
//
//	scp -q -r [-F configfile] [-i identityfile] [-P port] sources... [login@]host:target
//
// At least one source is required. Building the command as a vector
// rather than a shell string is what keeps file names with spaces or
// metacharacters safe.
func (c *Connection) CopyCommand(sources []string, target string) ([]string, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrValidation,
			"You should name at least one file to copy", "")
	}

	argv := []string{c.scpPath, "-q", "-r"}
	if c.configFile != "" {
		argv = append(argv, "-F", c.configFile)
	}
	if c.identityFile != "" {
		argv = append(argv, "-i", c.identityFile)
	}
	if c.port != 0 {
		argv = append(argv, "-P", strconv.Itoa(c.port))
	}
	argv = append(argv, sources...)

	remote := c.host
	if c.login != "" {
		remote = c.login + "@" + c.host
	}
	argv = append(argv, remote+":"+target)
	return argv, nil
}
