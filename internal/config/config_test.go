package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("data")
	cfg.Telegram = TelegramConfig{Token: "123:abc", ChatID: 42}
	cfg.Storage.ReadPolicy = "quarantine"

	path := filepath.Join(t.TempDir(), "moneytrack.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Storage, got.Storage)
	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
	assert.Equal(t, cfg.Server.AllowedOrigins, got.Server.AllowedOrigins)
	assert.Equal(t, int64(42), got.Telegram.ChatID)
	assert.True(t, got.Telegram.Enabled())
	assert.Equal(t, cfg.Git, got.Git)
}

func TestDefaults(t *testing.T) {
	cfg := Default("ledger")

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "ledger", cfg.Storage.Path)
	assert.Equal(t, "fallback", cfg.Storage.ReadPolicy)
	assert.Equal(t, "THB", cfg.Currency.Reference)
	assert.Equal(t, "one", cfg.Currency.RateFallback)
	assert.Equal(t, "console", cfg.Log.Mode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Telegram.Enabled())
	assert.Equal(t, "moneytrack", cfg.Git.AuthorName)

	assert.Equal(t, "memory", Default("").Storage.Driver)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneytrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: sqlite\n  path: ledger.db\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "ledger.db", cfg.Storage.Path)
	assert.Equal(t, "THB", cfg.Currency.Reference)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("data")
	path := filepath.Join(t.TempDir(), "moneytrack.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "driver: file")
	assert.Contains(t, contents, "path: data")
	assert.Contains(t, contents, "reference: THB")
	assert.Contains(t, contents, "rate_fallback: one")
	assert.NotContains(t, contents, "telegram")
}
