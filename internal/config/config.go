// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for looker-cli. It supports a four-layer
// override chain (defaults -> config file -> environment -> CLI flags). OAuth
// client credentials normally arrive through the environment (CLIENT_ID and
// CLIENT_SECRET, optionally from a local .env file) but may also live in the
// config file.
package config

import "time"

// Config is the top-level configuration structure parsed from a TOML file.
// All keys are flat; the embedded structs only group related fields.
type Config struct {
	AuthConfig
	LoggingConfig
	NetworkConfig
}

// AuthConfig holds the OAuth2 application credentials and token location.
type AuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenPath    string `toml:"token_path"`
	RedirectURL  string `toml:"redirect_url"`
}

// LoggingConfig controls the baseline log level. CLI flags override it.
type LoggingConfig struct {
	LogLevel string `toml:"log_level"`
}

// NetworkConfig controls HTTP client behavior.
type NetworkConfig struct {
	Timeout string `toml:"timeout"`
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. Empty strings mean "not specified".
type CLIOverrides struct {
	ConfigPath string // --config flag
	TokenPath  string // --token-path flag
}

// Resolved is the effective configuration after all override layers have
// been applied. It is the only config shape the rest of the program sees.
type Resolved struct {
	ConfigPath   string        `json:"config_path"`
	ClientID     string        `json:"client_id"`
	ClientSecret string        `json:"-"`
	TokenPath    string        `json:"token_path"`
	RedirectURL  string        `json:"redirect_url"`
	LogLevel     string        `json:"log_level"`
	Timeout      time.Duration `json:"timeout"`
}
