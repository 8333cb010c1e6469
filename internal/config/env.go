package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names for overrides.
const (
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvConfig       = "LOOKER_CLI_CONFIG"
	EnvTokenPath    = "LOOKER_CLI_TOKEN_PATH"
)

// DotEnvFile is the environment file read from the working directory.
const DotEnvFile = ".env"

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ClientID     string // CLIENT_ID
	ClientSecret string // CLIENT_SECRET
	ConfigPath   string // LOOKER_CLI_CONFIG: override config file path
	TokenPath    string // LOOKER_CLI_TOKEN_PATH: override token file path
}

// ReadEnvOverrides reads environment variables and returns any overrides found.
// This does not modify the Config; callers apply the relevant fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		ConfigPath:   os.Getenv(EnvConfig),
		TokenPath:    os.Getenv(EnvTokenPath),
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the env file at path into the process
// environment. Variables that are already set win over the file. A missing
// file is not an error; a malformed one is logged and skipped.
func LoadDotEnv(path string, logger *slog.Logger) {
	err := godotenv.Load(path)
	if err == nil {
		logger.Debug("loaded environment file", slog.String("path", path))

		return
	}

	if errors.Is(err, fs.ErrNotExist) {
		return
	}

	logger.Warn("ignoring unreadable environment file",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}
