package config

import "path/filepath"

// Config is the root configuration structure.
type Config struct {
	Discord DiscordConfig `json:"discord"`
	Books   BooksConfig   `json:"books"`
	Log     LogConfig     `json:"log"`
}

// DiscordConfig holds Discord gateway settings.
type DiscordConfig struct {
	Token     string   `json:"token"`
	AllowFrom []string `json:"allowFrom"`
	Intents   int      `json:"intents"`
}

// BooksConfig holds Google Books API settings.
type BooksConfig struct {
	APIKey            string  `json:"apiKey"`
	BaseURL           string  `json:"baseUrl,omitempty"`
	RecommendLimit    int     `json:"recommendLimit"`
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	TimeoutSeconds    int     `json:"timeoutSeconds"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// Guilds | GuildMessages | DirectMessages | MessageContent.
const defaultIntents = 1<<0 | 1<<9 | 1<<12 | 1<<15

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			Intents: defaultIntents,
		},
		Books: BooksConfig{
			BaseURL:           "https://www.googleapis.com/books/v1/volumes",
			RecommendLimit:    10,
			RequestsPerSecond: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LogPath returns the log file path, defaulting to bookbot.log in DataDir.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return filepath.Join(DataDir(), "bookbot.log")
}
