package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NetAngels/openssh-wrapper/internal/config"
	"github.com/NetAngels/openssh-wrapper/internal/errors"
	"github.com/NetAngels/openssh-wrapper/pkg/sshwrap"
)

// ConnectionFlags holds the connection flags shared by run and copy.
type ConnectionFlags struct {
	Login        string
	Port         int
	ConfigFile   string
	IdentityFile string
	AgentSocket  string
	Timeout      string
}

// AddConnectionFlags registers the shared connection flags on a command.
func AddConnectionFlags(cmd *cobra.Command, flags *ConnectionFlags) {
	cmd.Flags().StringVarP(&flags.Login, "login", "l", "", "remote login name")
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "remote SSH port")
	cmd.Flags().StringVarP(&flags.ConfigFile, "ssh-config", "F", "", "ssh_config file to pass to ssh/scp")
	cmd.Flags().StringVarP(&flags.IdentityFile, "identity", "i", "", "private key file")
	cmd.Flags().StringVar(&flags.AgentSocket, "agent-socket", "", "SSH agent socket (sets SSH_AUTH_SOCK)")
	cmd.Flags().StringVarP(&flags.Timeout, "timeout", "t", "", "per-call timeout (e.g. 30s, 2m)")
}

// ParseTimeout parses a timeout flag into a duration.
// Returns zero duration if the flag is empty.
func ParseTimeout(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrValidation,
			fmt.Sprintf("'%s' doesn't look like a valid timeout", flag),
			"Try something like 30s, 2m, or 500ms.")
	}
	return duration, nil
}

// resolveOptions merges the host's config profile with command-line flags.
// Flags win; the profile fills in what the flags leave unset.
func resolveOptions(host string, flags ConnectionFlags) (sshwrap.Options, config.Profile, error) {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return sshwrap.Options{}, config.Profile{}, err
	}
	profile := cfg.ForHost(host)

	timeout, err := ParseTimeout(flags.Timeout)
	if err != nil {
		return sshwrap.Options{}, config.Profile{}, err
	}
	if timeout == 0 {
		timeout = profile.Timeout
	}

	opts := sshwrap.Options{
		Login:        firstOf(flags.Login, profile.Login),
		ConfigFile:   firstOf(flags.ConfigFile, profile.ConfigFile),
		IdentityFile: firstOf(flags.IdentityFile, profile.IdentityFile),
		AgentSocket:  firstOf(flags.AgentSocket, profile.AgentSocket),
		Timeout:      timeout,
	}
	opts.Port = flags.Port
	if opts.Port == 0 {
		opts.Port = profile.Port
	}
	return opts, profile, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
