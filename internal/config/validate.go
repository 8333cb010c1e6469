package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

// ErrMissingCredentials is returned when the OAuth client ID or secret is
// not configured. It is a configuration error: callers must surface it
// before attempting any network activity.
var ErrMissingCredentials = errors.New(
	"missing CLIENT_ID or CLIENT_SECRET; set them in the environment or in a .env file")

// minTimeout is the smallest accepted HTTP timeout.
const minTimeout = 1 * time.Second

// Validate checks all configuration values and returns all errors found.
// It accumulates every error rather than stopping at the first, so users
// see a complete report and can fix all issues in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateLogLevel(cfg.LogLevel)...)
	errs = append(errs, validateTimeout(cfg.Timeout)...)
	errs = append(errs, validateRedirectURL(cfg.RedirectURL)...)

	return errors.Join(errs...)
}

// ValidateResolved checks constraints on the final merged result.
func ValidateResolved(r *Resolved) error {
	var errs []error

	if r.TokenPath == "" {
		errs = append(errs, errors.New("token_path: cannot determine a token location (no home directory)"))
	} else if !filepath.IsAbs(r.TokenPath) {
		errs = append(errs, fmt.Errorf("token_path: must be absolute after expansion, got %q", r.TokenPath))
	}

	return errors.Join(errs...)
}

// RequireCredentials returns ErrMissingCredentials unless both the client ID
// and secret are set.
func (r *Resolved) RequireCredentials() error {
	if r.ClientID == "" || r.ClientSecret == "" {
		return ErrMissingCredentials
	}

	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validateLogLevel(level string) []error {
	if !validLogLevels[level] {
		return []error{fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", level)}
	}

	return nil
}

func validateTimeout(value string) []error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("timeout: invalid duration %q: %w", value, err)}
	}

	if d < minTimeout {
		return []error{fmt.Errorf("timeout: must be >= %s, got %s", minTimeout, d)}
	}

	return nil
}

func validateRedirectURL(value string) []error {
	if value == "" {
		return []error{errors.New("redirect_url: must not be empty")}
	}

	u, err := url.Parse(value)
	if err != nil {
		return []error{fmt.Errorf("redirect_url: %w", err)}
	}

	if u.Scheme == "" {
		return []error{fmt.Errorf("redirect_url: missing scheme in %q", value)}
	}

	return nil
}
