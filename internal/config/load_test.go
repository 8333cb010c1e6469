package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger returns a debug-level logger so config debug output appears in
// test output.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestLoad_ValidFullConfig(t *testing.T) {
	path := writeTestConfig(t, `
client_id = "id.apps.googleusercontent.com"
client_secret = "shh"
token_path = "/var/lib/looker/token.json"
redirect_url = "http://127.0.0.1:8085"
log_level = "debug"
timeout = "45s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "id.apps.googleusercontent.com", cfg.ClientID)
	assert.Equal(t, "shh", cfg.ClientSecret)
	assert.Equal(t, "/var/lib/looker/token.json", cfg.TokenPath)
	assert.Equal(t, "http://127.0.0.1:8085", cfg.RedirectURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "45s", cfg.Timeout)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeTestConfig(t, `log_level = "info"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "30s", cfg.Timeout)
	assert.Equal(t, "http://localhost", cfg.RedirectURL)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeTestConfig(t, `log_level = `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	path := writeTestConfig(t, `log_level = "loud"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOrDefault_EmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve_DefaultsOnly(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")

	resolved, err := Resolve(EnvOverrides{}, CLIOverrides{ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, cfgPath, resolved.ConfigPath)
	assert.Empty(t, resolved.ClientID)
	assert.Equal(t, DefaultTokenPath(), resolved.TokenPath)
	assert.Equal(t, "warn", resolved.LogLevel)
	assert.Equal(t, 30*time.Second, resolved.Timeout)
	assert.ErrorIs(t, resolved.RequireCredentials(), ErrMissingCredentials)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeTestConfig(t, `
client_id = "file-id"
client_secret = "file-secret"
token_path = "/from/file/token.json"
`)

	resolved, err := Resolve(EnvOverrides{
		ClientID:  "env-id",
		TokenPath: "/from/env/token.json",
	}, CLIOverrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "env-id", resolved.ClientID)
	assert.Equal(t, "file-secret", resolved.ClientSecret)
	assert.Equal(t, "/from/env/token.json", resolved.TokenPath)
	assert.NoError(t, resolved.RequireCredentials())
}

func TestResolve_CLIOverridesEnv(t *testing.T) {
	envPath := writeTestConfig(t, `log_level = "info"`)
	cliPath := writeTestConfig(t, `log_level = "error"`)

	resolved, err := Resolve(EnvOverrides{
		ConfigPath: envPath,
		TokenPath:  "/from/env/token.json",
	}, CLIOverrides{
		ConfigPath: cliPath,
		TokenPath:  "/from/cli/token.json",
	})
	require.NoError(t, err)
	assert.Equal(t, cliPath, resolved.ConfigPath)
	assert.Equal(t, "error", resolved.LogLevel)
	assert.Equal(t, "/from/cli/token.json", resolved.TokenPath)
}

func TestResolve_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	resolved, err := Resolve(EnvOverrides{}, CLIOverrides{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		TokenPath:  "~/tokens/looker.json",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tokens", "looker.json"), resolved.TokenPath)
}

func TestResolve_RelativeTokenPathRejected(t *testing.T) {
	_, err := Resolve(EnvOverrides{}, CLIOverrides{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		TokenPath:  "token.json",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_path")
}

func TestResolve_BrokenConfigFile(t *testing.T) {
	path := writeTestConfig(t, `timeout = "soon"`)

	_, err := Resolve(EnvOverrides{}, CLIOverrides{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
