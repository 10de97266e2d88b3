package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
)

const fileHeader = `# sshwrap configuration
# Connection defaults for 'sshwrap run' and 'sshwrap copy'.
# Host-specific profiles override the defaults block.

`

// Write marshals the config to YAML and writes it to path. An existing
// file is only overwritten when force is set.
func Write(cfg *Config, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.WriteFile(path, []byte(fileHeader+string(data)), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}

// Starter returns the config written by 'sshwrap init': one example
// host profile the user is expected to edit.
func Starter(host, login string) *Config {
	cfg := DefaultConfig()
	if host == "" {
		host = "server.example.com"
	}
	cfg.Hosts[host] = Profile{Login: login}
	return cfg
}
