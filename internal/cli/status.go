package cli

import (
	"fmt"
	"os"

	"github.com/joebot/bookbot/internal/config"
)

// RunStatus displays the current configuration status with styled output.
func RunStatus(cfg *config.Config) {
	cfgPath := config.ConfigPath()

	fmt.Println()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("  %s bookbot Status", Logo)))
	fmt.Println()

	fmt.Printf("  %-14s %s  %s\n", "Config", StatusBadge(fileExists(cfgPath)), DimStyle.Render(cfgPath))
	fmt.Printf("  %-14s %s  %s\n", "Log file", StatusBadge(fileExists(cfg.LogPath())), DimStyle.Render(cfg.LogPath()))
	fmt.Printf("  %-14s %s\n", "Log level", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  " + BoldStyle.Render("Discord"))
	fmt.Printf("    %s  Token\n", StatusBadge(cfg.Discord.Token != ""))
	allow := "everyone"
	if n := len(cfg.Discord.AllowFrom); n > 0 {
		allow = fmt.Sprintf("%d user(s)", n)
	}
	fmt.Printf("    %-12s %s\n", "Allow from", DimStyle.Render(allow))
	fmt.Printf("    %-12s %s\n", "Intents", DimStyle.Render(fmt.Sprint(cfg.Discord.Intents)))
	fmt.Println()

	fmt.Println("  " + BoldStyle.Render("Google Books"))
	fmt.Printf("    %s  API key\n", StatusBadge(cfg.Books.APIKey != ""))
	fmt.Printf("    %-12s %s\n", "Endpoint", DimStyle.Render(cfg.Books.BaseURL))
	fmt.Printf("    %-12s %s\n", "Recommend", DimStyle.Render(fmt.Sprintf("up to %d results", cfg.Books.RecommendLimit)))
	fmt.Printf("    %-12s %s\n", "Rate", DimStyle.Render(fmt.Sprintf("%.1f req/s", cfg.Books.RequestsPerSecond)))
	fmt.Println()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
