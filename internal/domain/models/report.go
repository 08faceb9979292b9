package models

import "time"

// DateLayout is the canonical report date format.
const DateLayout = "2006-01-02"

// ReportDocument is the write-once aggregate a run produces.
type ReportDocument struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Trader       string           `json:"trader"`
	MarketClosed bool             `json:"market_closed"`
	Stance       Stance           `json:"stance"`
	Reason       string           `json:"reason"`
	Signal       MarketSignal     `json:"signal"`
	Watchlist    []WatchlistEntry `json:"watchlist"`
	RiskNotes    string           `json:"risk_notes"`
	News         []string         `json:"news,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// DeliveryResult is the boundary view of a delivery attempt.
type DeliveryResult struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Message string `json:"message"`
}

// ReportSummary is the archived one-line view of a past report.
type ReportSummary struct {
	Date            string    `json:"date"`
	Stance          string    `json:"stance"`
	MarketClosed    bool      `json:"market_closed"`
	VolatilityIndex float64   `json:"volatility_index"`
	IndexReturnPct  float64   `json:"index_return_pct"`
	Symbols         []string  `json:"symbols"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// NewDeliveryResult converts a delivery error into its boundary result.
func NewDeliveryResult(err error) DeliveryResult {
	if err == nil {
		return DeliveryResult{Success: true, Message: "delivered"}
	}
	return DeliveryResult{Success: false, Message: err.Error()}
}
