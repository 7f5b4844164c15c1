package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDiscordToken = "DISCORD_TOKEN"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvLogLevel     = "BOOKBOT_LOG_LEVEL"
)

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(homeDir(), ".bookbot", "config.json")
}

// DataDir returns the bookbot data directory.
func DataDir() string {
	dir := filepath.Join(homeDir(), ".bookbot")
	os.MkdirAll(dir, 0o755)
	return dir
}

// Load reads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from path, then applies .env and
// environment overrides. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
		if unknown := CheckUnknownFields(raw); len(unknown) > 0 {
			slog.Warn("Unknown config fields ignored", "path", path, "fields", strings.Join(unknown, ","))
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return cfg, fmt.Errorf("apply config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDiscordToken); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv(EnvGoogleAPIKey); v != "" {
		cfg.Books.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	d := DefaultConfig()
	if cfg.Discord.Intents == 0 {
		cfg.Discord.Intents = d.Discord.Intents
	}
	if cfg.Books.BaseURL == "" {
		cfg.Books.BaseURL = d.Books.BaseURL
	}
	if cfg.Books.RecommendLimit == 0 {
		cfg.Books.RecommendLimit = d.Books.RecommendLimit
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
}

// Save writes configuration to the default path.
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes configuration to path as indented JSON.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// The file holds secrets.
	return os.WriteFile(path, out, 0o600)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return home
}
