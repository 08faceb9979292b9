package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"MomentumReport/pkg/util"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Deliver the report for a date to the webhook",
	Long: `Delivers the report for --date, generating it first when it is not cached.
A skipped delivery (webhook not configured, closed market, already sent)
exits 0; a failed delivery exits 1.`,
	RunE: runSend,
}

var (
	sendDate  string
	sendForce bool
)

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendDate, "date", "", "Report date YYYY-MM-DD (default: today)")
	sendCmd.Flags().BoolVar(&sendForce, "force", false, "Send even if closed or already delivered")
}

func runSend(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	date, err := util.ParseDate(sendDate, app.Location())
	if err != nil {
		return err
	}

	res, err := app.Send(context.Background(), date, sendForce)
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "delivery: %s\n", res.Message)
	if !res.Success && !res.Skipped {
		return fmt.Errorf("delivery failed: %s", res.Message)
	}
	return nil
}
