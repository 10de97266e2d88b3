// Package sshwrap wraps the OpenSSH ssh and scp binaries. A Connection
// holds validated parameters for one remote host and runs commands or
// copies files synchronously, each call bounded by a wall-clock
// deadline. The SSH protocol itself is entirely the external binaries'
// business; this package only builds argument vectors, spawns the
// processes, and interprets their exit status.
package sshwrap

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
	"github.com/NetAngels/openssh-wrapper/internal/logger"
)

const (
	// DefaultSSHPath is where the ssh client binary is expected.
	DefaultSSHPath = "/usr/bin/ssh"
	// DefaultSCPPath is where the scp binary is expected.
	DefaultSCPPath = "/usr/bin/scp"
	// DefaultTimeout bounds each run/copy call when Options.Timeout is zero.
	DefaultTimeout = 60 * time.Second
	// DefaultInterpreter receives the command text on its stdin.
	DefaultInterpreter = "/bin/bash"
)

// namePattern is the allow-list for host and login strings. Anything
// outside it is rejected so a host name can never smuggle ssh options
// or shell metacharacters into the argument vector.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Options configures a Connection. The zero value is usable: current
// login, default port, no config or identity file, 60s timeout.
type Options struct {
	// Login is the remote user. Empty means whatever ssh resolves.
	Login string
	// Port is the remote SSH port. Zero means ssh's default.
	Port int
	// ConfigFile is passed to ssh/scp via -F. Must exist locally.
	ConfigFile string
	// IdentityFile is passed via -i. Must exist locally.
	IdentityFile string
	// AgentSocket overrides SSH_AUTH_SOCK in the child environment.
	AgentSocket string
	// Timeout bounds each run/copy call. Zero means DefaultTimeout.
	Timeout time.Duration
	// SSHPath and SCPPath override the binary locations.
	SSHPath string
	SCPPath string
	// Runner overrides process spawning, mainly for tests.
	Runner Runner
	// Logger receives debug traces of spawned commands.
	Logger logger.Logger
}

// Connection holds everything needed to reach one remote host.
// Immutable after construction and reusable across calls; no state
// outlives a single Run or Copy except these parameters.
type Connection struct {
	host         string
	login        string
	port         int
	configFile   string
	identityFile string
	agentSocket  string
	timeout      time.Duration
	sshPath      string
	scpPath      string
	runner       Runner
	log          logger.Logger
}

// NewConnection validates the parameters and returns a ready
// Connection. Validation is purely local: character allow-list on host
// and login, existence checks on the config and identity files (after
// ~ expansion). No network access happens here.
func NewConnection(host string, opts Options) (*Connection, error) {
	if !namePattern.MatchString(host) {
		return nil, errors.New(errors.ErrValidation,
			"Server name contains illegal symbols",
			"Host names may only contain letters, digits, '.', '_' and '-'")
	}
	if opts.Login != "" && !namePattern.MatchString(opts.Login) {
		return nil, errors.New(errors.ErrValidation,
			"User login contains illegal symbols",
			"Logins may only contain letters, digits, '.', '_' and '-'")
	}

	configFile := expandPath(opts.ConfigFile)
	if configFile != "" {
		if err := checkFile(configFile); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrValidation,
				"Config file "+configFile+" is not found",
				"Check the -F path points at an existing ssh_config")
		}
	}

	identityFile := expandPath(opts.IdentityFile)
	if identityFile != "" {
		if err := checkFile(identityFile); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrValidation,
				"Key file "+identityFile+" is not found",
				"Check the -i path points at an existing private key")
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	sshPath := opts.SSHPath
	if sshPath == "" {
		sshPath = DefaultSSHPath
	}
	scpPath := opts.SCPPath
	if scpPath == "" {
		scpPath = DefaultSCPPath
	}
	runner := opts.Runner
	if runner == nil {
		runner = NewExecRunner()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	return &Connection{
		host:         host,
		login:        opts.Login,
		port:         opts.Port,
		configFile:   configFile,
		identityFile: identityFile,
		agentSocket:  opts.AgentSocket,
		timeout:      timeout,
		sshPath:      sshPath,
		scpPath:      scpPath,
		runner:       runner,
		log:          log,
	}, nil
}

// Host returns the remote host name.
func (c *Connection) Host() string { return c.host }

// Login returns the remote user, or "" when unset.
func (c *Connection) Login() string { return c.login }

// Timeout returns the per-call deadline.
func (c *Connection) Timeout() time.Duration { return c.timeout }

// environ returns a copy of the caller's environment with
// SSH_AUTH_SOCK overridden when an agent socket was configured.
// os/exec uses the last value for duplicate keys.
func (c *Connection) environ() []string {
	env := os.Environ()
	if c.agentSocket != "" {
		env = append(env, "SSH_AUTH_SOCK="+c.agentSocket)
	}
	return env
}

// checkFile verifies path exists and is a regular file.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return nil
}

func expandPath(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}
