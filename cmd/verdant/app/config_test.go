package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "./catalog", config.StorePath)
	assert.Equal(t, "", config.SynonymsFile)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table"}

	config.UpdateFromFlags(true, false, true, "json", "debug")

	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestUpdateFromFlagsEmptyValuesKeepExisting(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "warn"}

	config.UpdateFromFlags(false, false, false, "", "")

	assert.Equal(t, "table", config.Format)
	assert.Equal(t, "warn", config.LogLevel)
}
