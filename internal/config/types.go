// Package config loads the optional .sshwrap.yaml file that supplies
// default connection parameters for the CLI. The library itself never
// reads configuration; it takes explicit options.
package config

import "time"

// ConfigFileName is the per-project config file name.
const ConfigFileName = ".sshwrap.yaml"

// GlobalConfigDir is the directory for global config, under $HOME.
const GlobalConfigDir = ".config/sshwrap"

// GlobalConfigFile is the global config file name.
const GlobalConfigFile = "config.yaml"

// Config is the complete .sshwrap.yaml structure.
type Config struct {
	// Defaults apply to every host unless overridden.
	Defaults Profile `yaml:"defaults" mapstructure:"defaults"`

	// Hosts maps a host name to its connection profile.
	Hosts map[string]Profile `yaml:"hosts" mapstructure:"hosts"`
}

// Profile holds connection parameters for one host (or the defaults).
type Profile struct {
	Login        string        `yaml:"login,omitempty" mapstructure:"login"`
	Port         int           `yaml:"port,omitempty" mapstructure:"port"`
	ConfigFile   string        `yaml:"config_file,omitempty" mapstructure:"config_file"`
	IdentityFile string        `yaml:"identity_file,omitempty" mapstructure:"identity_file"`
	AgentSocket  string        `yaml:"agent_socket,omitempty" mapstructure:"agent_socket"`
	Timeout      time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
	Interpreter  string        `yaml:"interpreter,omitempty" mapstructure:"interpreter"`
	ForwardAgent bool          `yaml:"forward_agent,omitempty" mapstructure:"forward_agent"`
}

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{Hosts: make(map[string]Profile)}
}

// ForHost merges the host-specific profile over the defaults.
func (c *Config) ForHost(host string) Profile {
	merged := c.Defaults
	profile, ok := c.Hosts[host]
	if !ok {
		return merged
	}

	if profile.Login != "" {
		merged.Login = profile.Login
	}
	if profile.Port != 0 {
		merged.Port = profile.Port
	}
	if profile.ConfigFile != "" {
		merged.ConfigFile = profile.ConfigFile
	}
	if profile.IdentityFile != "" {
		merged.IdentityFile = profile.IdentityFile
	}
	if profile.AgentSocket != "" {
		merged.AgentSocket = profile.AgentSocket
	}
	if profile.Timeout != 0 {
		merged.Timeout = profile.Timeout
	}
	if profile.Interpreter != "" {
		merged.Interpreter = profile.Interpreter
	}
	if profile.ForwardAgent {
		merged.ForwardAgent = true
	}
	return merged
}
