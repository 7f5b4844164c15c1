package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joebot/bookbot/internal/cli"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show configuration",
		RunE:  runStatus,
	})
}

func runStatus(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Fail(err.Error()))
	}
	cli.RunStatus(cfg)
	return nil
}
