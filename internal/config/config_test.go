package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_AllFieldsPopulated(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.ClientID)
	assert.Empty(t, cfg.ClientSecret)
	assert.Empty(t, cfg.TokenPath)
	assert.Equal(t, "http://localhost", cfg.RedirectURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "30s", cfg.Timeout)
}

func TestDefaultConfig_Validates(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}
