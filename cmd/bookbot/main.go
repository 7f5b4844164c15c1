package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joebot/bookbot/internal/books"
	"github.com/joebot/bookbot/internal/bot"
	"github.com/joebot/bookbot/internal/cli"
	"github.com/joebot/bookbot/internal/config"
	"github.com/joebot/bookbot/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "bookbot",
	Short:         cli.Logo + " bookbot, a Discord bot for Google Books",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Fail(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = cli.Version
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.bookbot/config.json)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "onboard",
			Short: "Initialize setup",
			RunE:  func(*cobra.Command, []string) error { return cli.RunOnboard() },
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show version",
			Run: func(*cobra.Command, []string) {
				fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  %s bookbot v%s", cli.Logo, cli.Version)))
			},
		},
	)
}

// --- helpers ---

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// setupLogs logs to stderr for the gateway and to the log file for the
// terminal UIs, which own the screen.
func setupLogs(cfg *config.Config, toFile bool) {
	level := logging.ParseLevel(cfg.Log.Level)
	if !toFile {
		color := isatty.IsTerminal(os.Stderr.Fd())
		slog.SetDefault(logging.New(os.Stderr, level, color))
		return
	}

	f, err := os.OpenFile(cfg.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(logging.New(io.Discard, level, false))
		return
	}
	slog.SetDefault(logging.New(f, level, false))
}

func newRouter(cfg *config.Config) (*bot.Router, error) {
	if cfg.Books.APIKey == "" {
		return nil, fmt.Errorf("no Google Books API key configured; set books.apiKey or %s", config.EnvGoogleAPIKey)
	}
	client := books.NewClient(cfg.Books.APIKey,
		books.WithBaseURL(cfg.Books.BaseURL),
		books.WithTimeout(time.Duration(cfg.Books.TimeoutSeconds)*time.Second),
		books.WithRateLimit(cfg.Books.RequestsPerSecond),
	)
	return bot.NewRouter(client,
		bot.WithRecommendLimit(cfg.Books.RecommendLimit),
		bot.WithLogger(slog.Default()),
	), nil
}
