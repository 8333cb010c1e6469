package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal errors with "did you mean?"
// suggestions.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// a Config populated with all default values. Most users never create a
// config file and rely on CLIENT_ID / CLIENT_SECRET alone.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the override chain:
// defaults -> config file -> environment variables -> CLI flags.
// Credentials are not required here so that commands which never touch the
// network still work; RequireCredentials enforces them.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	// 1. Resolve config path: CLI > env > default
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	// 2. Load config file (returns defaults if no file exists)
	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{
		ConfigPath:   cfgPath,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenPath:    expandTilde(cfg.TokenPath),
		RedirectURL:  cfg.RedirectURL,
		LogLevel:     cfg.LogLevel,
		Timeout:      defaultTimeoutDuration,
	}

	if d, parseErr := time.ParseDuration(cfg.Timeout); parseErr == nil {
		resolved.Timeout = d
	}

	if resolved.TokenPath == "" {
		resolved.TokenPath = DefaultTokenPath()
	}

	// 3. Apply env overrides
	if env.ClientID != "" {
		resolved.ClientID = env.ClientID
	}

	if env.ClientSecret != "" {
		resolved.ClientSecret = env.ClientSecret
	}

	if env.TokenPath != "" {
		resolved.TokenPath = expandTilde(env.TokenPath)
	}

	// 4. Apply CLI overrides
	if cli.TokenPath != "" {
		resolved.TokenPath = expandTilde(cli.TokenPath)
	}

	// 5. Validate the final resolved configuration
	if err := ValidateResolved(resolved); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return resolved, nil
}
