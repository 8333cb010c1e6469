package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTemplate_CreatesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, WriteTemplate(path, testLogger(t)))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestWriteTemplate_PrivatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions only")
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteTemplate(path, testLogger(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(configFilePermissions), info.Mode().Perm())
}

func TestWriteTemplate_RefusesOverwrite(t *testing.T) {
	path := writeTestConfig(t, `log_level = "debug"`)

	err := WriteTemplate(path, testLogger(t))
	require.ErrorIs(t, err, ErrConfigExists)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, `log_level = "debug"`, string(data))
}
