package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.NotEmpty(t, cfg.TextModel)
	assert.NotEmpty(t, cfg.ImageModel)
}

func TestCellGetCachesUntilRefresh(t *testing.T) {
	value := "first"
	cell := NewCell(func() string { return value })

	assert.Equal(t, "first", cell.Get())

	value = "second"
	assert.Equal(t, "first", cell.Get(), "Get should return the cached value")
	assert.Equal(t, "second", cell.Refresh())
	assert.Equal(t, "second", cell.Get())
}

func TestCredentialCellReadsEnv(t *testing.T) {
	t.Setenv(CredentialEnvVar, "late-injected")
	cell := CredentialCell()
	assert.Equal(t, "late-injected", cell.Get())

	t.Setenv(CredentialEnvVar, "even-later")
	assert.Equal(t, "even-later", cell.Refresh())
}

func TestUsableCredential(t *testing.T) {
	assert.True(t, UsableCredential("sk-123"))
	assert.False(t, UsableCredential(""))
	assert.False(t, UsableCredential("   "))
	assert.False(t, UsableCredential("undefined"))
}
