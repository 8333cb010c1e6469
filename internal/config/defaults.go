package config

import "time"

// Default values for configuration options. These represent "layer 0" of the
// override chain.
const (
	defaultLogLevel = "warn"
	defaultTimeout  = "30s"

	// defaultRedirectURL is the loopback redirect registered for Google
	// "Desktop app" OAuth clients. Nothing listens on it: the browser shows
	// a connection error whose address bar carries the authorization code,
	// which the user pastes back into the terminal.
	defaultRedirectURL = "http://localhost"

	defaultTimeoutDuration = 30 * time.Second
)

// DefaultConfig returns a Config populated with all default values.
// This is used both as the starting point for TOML decoding (so unset
// fields retain defaults) and as the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		AuthConfig: AuthConfig{
			RedirectURL: defaultRedirectURL,
		},
		LoggingConfig: LoggingConfig{
			LogLevel: defaultLogLevel,
		},
		NetworkConfig: NetworkConfig{
			Timeout: defaultTimeout,
		},
	}
}
