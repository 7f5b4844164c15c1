package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joebot/bookbot/internal/channel"
	"github.com/joebot/bookbot/internal/cli"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "gateway",
		Short: "Connect to Discord and serve commands",
		RunE:  runGateway,
	})
}

// --- gateway command ---

func runGateway(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireGateway(); err != nil {
		return err
	}
	setupLogs(cfg, false)

	router, err := newRouter(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("  %s bookbot Gateway", cli.Logo)))
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	discord := channel.NewDiscord(cfg.Discord, router)
	fmt.Println("  " + cli.OkStyle.Render("✓") + " Discord")
	fmt.Println()

	errCh := make(chan error, 1)
	go func() { errCh <- discord.Start(ctx) }()

	fmt.Println(cli.DimStyle.Render("  Press Ctrl+C to stop"))
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if ctx.Err() == nil {
			slog.Error("Discord channel error", "err", err)
			return err
		}
	}

	fmt.Println("\n  Shutting down...")
	return discord.Stop()
}
