package main

import (
	"context"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the daily schedule",
	RunE: func(_ *cobra.Command, _ []string) error {
		app, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		return app.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
