package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("STASH_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "googleai", cfg.Provider)
	assert.Equal(t, "stash.sqlite3", cfg.DBPath)
	assert.Equal(t, "stash_inventory", cfg.Slot)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"provider: openai\napi_key: file-key\ndb: /tmp/other.sqlite3\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "file-key", cfg.APIKey)
	// Unset fields keep their defaults.
	assert.Equal(t, "gemini-2.5-flash", cfg.ChatModel)
	assert.Equal(t, "stash_inventory", cfg.Slot)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("STASH_API_KEY", "shared-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "shared-key", cfg.APIKey)
}

func TestAPIKeyProviderFallback(t *testing.T) {
	t.Setenv("STASH_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.APIKey)
}

func TestAPIKeyFileWins(t *testing.T) {
	t.Setenv("STASH_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "stash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: file-key\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
}
