package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// configFilePermissions keeps the config file private because it may hold
// the OAuth client secret.
const configFilePermissions = 0o600

// configDirPermissions is the permission mode for the config directory.
const configDirPermissions = 0o700

// ErrConfigExists is returned by WriteTemplate when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

// configTemplate is the config file content written by "config init". Every
// setting is present as a commented-out default so users can discover each
// option without reading docs.
const configTemplate = `# looker-cli configuration
#
# Credentials are usually supplied through CLIENT_ID and CLIENT_SECRET in the
# environment or in a .env file in the working directory. Values set there
# override the ones below.

# OAuth2 client ID and secret of a Google "Desktop app" client.
# client_id = ""
# client_secret = ""

# Where the OAuth token is stored (default: next to this file).
# token_path = ""

# Redirect URI registered for the OAuth client.
# redirect_url = "http://localhost"

# Log verbosity: debug, info, warn, error
# log_level = "warn"

# HTTP timeout for API calls.
# timeout = "30s"
`

// WriteTemplate creates a new config file at path from the default template.
// It refuses to overwrite an existing file.
func WriteTemplate(path string, logger *slog.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	logger.Info("creating config file", slog.String("path", path))

	return atomicWriteFile(path, []byte(configTemplate))
}

// atomicWriteFile writes data to path via a temp file in the same directory
// followed by rename, so readers never see a partial file.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirPermissions); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tempPath := f.Name()

	succeeded := false
	defer func() {
		if !succeeded {
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()

		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tempPath, configFilePermissions); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	succeeded = true

	return nil
}
