package service

import (
	"context"
	"time"

	"MomentumReport/internal/domain/models"
)

// MarketDataProvider returns daily candles, oldest first, for the rng window
// ending on the trading day asOf.
type MarketDataProvider interface {
	DailyCandles(ctx context.Context, symbol, rng string, asOf time.Time) ([]models.Candle, error)
}

// SearchProvider returns an unstructured text blob for a query.
type SearchProvider interface {
	Search(ctx context.Context, query string) (string, error)
}

// Notifier delivers a report to a chat channel in a single attempt.
// rendered is the markdown body, used by plain-text formats.
type Notifier interface {
	DeliverReport(ctx context.Context, doc *models.ReportDocument, rendered string) error
}
