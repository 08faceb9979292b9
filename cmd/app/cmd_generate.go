package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"MomentumReport/pkg/logger"
	"MomentumReport/pkg/util"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and save the report for a date",
	Long: `Generates the report for --date (default: today in the report timezone),
writes <date>_report.md to the output directory and, with --send,
delivers it to the configured webhook. For a past --date, price data is the
window ending on that day; news headlines are always the latest.`,
	RunE: runGenerate,
}

var (
	generateDate string
	generateSend bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateDate, "date", "", "Report date YYYY-MM-DD (default: today)")
	generateCmd.Flags().BoolVar(&generateSend, "send", false, "Deliver the report after saving")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	date, err := util.ParseDate(generateDate, app.Location())
	if err != nil {
		return err
	}

	res, err := app.Generate(context.Background(), date, generateSend)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	doc := res.Document
	app.Logger().Info("Report generated",
		logger.String("date", doc.Date),
		logger.String("stance", doc.Stance.String()),
		logger.Bool("market_closed", doc.MarketClosed),
		logger.Int("watchlist", len(doc.Watchlist)))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", doc.Date, doc.Stance)
	for i, e := range doc.Watchlist {
		fmt.Fprintf(out, "  %d. %-6s %s (%d%%)\n", i+1, e.Symbol, e.EntryCondition, e.SuccessProbability)
	}

	if d := res.Delivery; d != nil {
		fmt.Fprintf(out, "delivery: %s\n", d.Message)
		if !d.Success && !d.Skipped {
			return fmt.Errorf("delivery failed: %s", d.Message)
		}
	}
	return nil
}
