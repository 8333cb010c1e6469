package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidDefaults(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_LogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := DefaultConfig()
		cfg.LogLevel = level
		assert.NoError(t, Validate(cfg), level)
	}

	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestValidate_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = "500ms"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout: must be >=")

	cfg.Timeout = "forever"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate_RedirectURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RedirectURL = ""
	require.Error(t, Validate(cfg))

	cfg.RedirectURL = "localhost"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing scheme")
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "nope"
	cfg.Timeout = "nope"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "timeout")
}

func TestRequireCredentials(t *testing.T) {
	assert.ErrorIs(t, (&Resolved{}).RequireCredentials(), ErrMissingCredentials)
	assert.ErrorIs(t, (&Resolved{ClientID: "id"}).RequireCredentials(), ErrMissingCredentials)
	assert.ErrorIs(t, (&Resolved{ClientSecret: "s"}).RequireCredentials(), ErrMissingCredentials)
	assert.NoError(t, (&Resolved{ClientID: "id", ClientSecret: "s"}).RequireCredentials())
}
