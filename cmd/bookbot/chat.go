package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joebot/bookbot/internal/cli"
)

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Interactive terminal chat",
			RunE:  runChat,
		},
		&cobra.Command{
			Use:   "ask <message>",
			Short: "Route a single message and print the reply",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runAsk,
		},
	)
}

func runChat(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogs(cfg, true)

	router, err := newRouter(cfg)
	if err != nil {
		return err
	}
	return cli.RunChat(context.Background(), router, cli.ChatConfig{
		APIBase: cfg.Books.BaseURL,
		LogPath: cfg.LogPath(),
	})
}

func runAsk(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogs(cfg, true)

	router, err := newRouter(cfg)
	if err != nil {
		return err
	}
	return cli.RunSingleMessage(context.Background(), router, strings.Join(args, " "))
}
