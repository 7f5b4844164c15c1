package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joebot/bookbot/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvDiscordToken, "")
	t.Setenv(config.EnvGoogleAPIKey, "")
	t.Setenv(config.EnvLogLevel, "")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, 37377, cfg.Discord.Intents)
	assert.Equal(t, 10, cfg.Books.RecommendLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Error(t, cfg.RequireGateway())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	tmp := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmp, []byte(`{
		"discord": {"token": "from-file"},
		"books": {"apiKey": "file-key", "recommendLimit": 20}
	}`), 0o600))

	t.Setenv(config.EnvDiscordToken, "from-env")

	cfg, err := config.LoadFrom(tmp)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, "file-key", cfg.Books.APIKey)
	assert.Equal(t, 20, cfg.Books.RecommendLimit)
	assert.NoError(t, cfg.RequireGateway())
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	tmp := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := config.DefaultConfig()
	cfg.Books.APIKey = "k"
	cfg.Discord.AllowFrom = []string{"42"}
	require.NoError(t, config.SaveTo(cfg, tmp))

	info, err := os.Stat(tmp)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.LoadFrom(tmp)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateRejectsInvalid(t *testing.T) {
	clearEnv(t)
	tmp := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmp, []byte(`{
		"books": {"recommendLimit": 99, "requestsPerSecond": -1},
		"log": {"level": "loud"}
	}`), 0o600))

	_, err := config.LoadFrom(tmp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "books.recommendLimit")
	assert.Contains(t, err.Error(), "books.requestsPerSecond")
	assert.Contains(t, err.Error(), "log.level")
}

func TestCheckUnknownFields(t *testing.T) {
	raw := map[string]any{
		"discord": map[string]any{"token": "x", "shard": 1},
		"extra":   true,
	}
	assert.Equal(t, []string{"discord.shard", "extra"}, config.CheckUnknownFields(raw))
}
