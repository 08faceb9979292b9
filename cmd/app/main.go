package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"MomentumReport/internal/di"
	"MomentumReport/pkg/config"
	"MomentumReport/pkg/server"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Daily momentum market report generator",
	Long: `Generates the daily momentum report for US equities, saves it as
markdown and delivers a summary card to a Feishu webhook.

Examples:
  momentum generate
  momentum generate --date 2026-10-19 --send
  momentum send --force
  momentum serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
}

// bootstrap loads config and wires the application.
func bootstrap() (*server.App, func(), error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config load failed: %w", err)
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("app initialization failed: %w", err)
	}
	return app, func() {
		app.Close()
		cleanup()
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
