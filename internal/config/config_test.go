package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg.Hosts)
	assert.Empty(t, cfg.Hosts)
	assert.Zero(t, cfg.Defaults)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
defaults:
  login: deploy
  timeout: 30s
hosts:
  web.example.com:
    port: 2222
    identity_file: ~/.ssh/web_ed25519
  db.example.com:
    login: postgres
    forward_agent: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "deploy", cfg.Defaults.Login)
	assert.Equal(t, 30*time.Second, cfg.Defaults.Timeout)
	require.Len(t, cfg.Hosts, 2)
	assert.Equal(t, 2222, cfg.Hosts["web.example.com"].Port)
	assert.Equal(t, "~/.ssh/web_ed25519", cfg.Hosts["web.example.com"].IdentityFile)
	assert.True(t, cfg.Hosts["db.example.com"].ForwardAgent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("hosts: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestForHost(t *testing.T) {
	cfg := &Config{
		Defaults: Profile{Login: "deploy", Timeout: 30 * time.Second, Interpreter: "/bin/sh"},
		Hosts: map[string]Profile{
			"web.example.com": {Login: "www", Port: 2222},
		},
	}

	merged := cfg.ForHost("web.example.com")
	assert.Equal(t, "www", merged.Login, "host login overrides default")
	assert.Equal(t, 2222, merged.Port)
	assert.Equal(t, 30*time.Second, merged.Timeout, "defaults survive where host is silent")
	assert.Equal(t, "/bin/sh", merged.Interpreter)

	unknown := cfg.ForHost("other.example.com")
	assert.Equal(t, cfg.Defaults, unknown, "unknown host gets plain defaults")
}

func TestFindExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hosts: {}"), 0o644))

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hosts: {}"), 0o644))

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(orig)

	found, err := Find("")
	require.NoError(t, err)
	// Resolve symlinks: macOS puts TempDir under /var -> /private/var.
	want, _ := filepath.EvalSymlinks(filepath.Join(dir, ConfigFileName))
	got, _ := filepath.EvalSymlinks(found)
	assert.Equal(t, want, got)
}

func TestLoadOrDefaultWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(orig)

	// Empty HOME keeps the global config out of the search.
	t.Setenv("HOME", dir)

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Hosts)
}

func TestWriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := Starter("web.example.com", "deploy")
	require.NoError(t, Write(cfg, path, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deploy", loaded.Hosts["web.example.com"].Login)
}

func TestWriteRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("hosts: {}"), 0o644))

	e := Write(DefaultConfig(), path, false)
	require.Error(t, e)
	assert.True(t, errors.IsCode(e, errors.ErrConfig))

	require.NoError(t, Write(DefaultConfig(), path, true), "force overwrites")
}
