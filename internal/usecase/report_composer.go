package usecase

import (
	"time"

	"github.com/google/uuid"

	"MomentumReport/internal/domain/models"
	"MomentumReport/pkg/util"
)

const (
	closedReason = "Market closed (weekend)"
	closedNotes  = "- Review this week's trades\n- Check weekend news and earnings dates\n- Plan next week's watchlist"
)

// IsTradingDay reports whether date is a weekday in its own location.
// Exchange holidays are not modelled.
func IsTradingDay(date time.Time) bool {
	return !util.IsWeekend(date)
}

// ReportComposer assembles write-once report documents.
type ReportComposer struct {
	trader string
	now    func() time.Time
}

func NewReportComposer(trader string) *ReportComposer {
	return &ReportComposer{trader: trader, now: time.Now}
}

// Compose builds the document for date. Weekend dates yield the closed-market
// document and the remaining arguments are ignored.
func (c *ReportComposer) Compose(
	date time.Time,
	stance models.Stance,
	reason string,
	signal models.MarketSignal,
	watchlist []models.WatchlistEntry,
	riskNotes string,
) *models.ReportDocument {
	if !IsTradingDay(date) {
		return c.ClosedDocument(date)
	}

	wl := make([]models.WatchlistEntry, len(watchlist))
	copy(wl, watchlist)

	return &models.ReportDocument{
		ID:          uuid.NewString(),
		Date:        util.FormatDate(date),
		Trader:      c.trader,
		Stance:      stance,
		Reason:      reason,
		Signal:      signal,
		Watchlist:   wl,
		RiskNotes:   riskNotes,
		GeneratedAt: c.now(),
	}
}

// ClosedDocument is the fixed document for non-trading days.
func (c *ReportComposer) ClosedDocument(date time.Time) *models.ReportDocument {
	return &models.ReportDocument{
		ID:           uuid.NewString(),
		Date:         util.FormatDate(date),
		Trader:       c.trader,
		MarketClosed: true,
		Stance:       models.StanceHoldCash,
		Reason:       closedReason,
		Watchlist:    []models.WatchlistEntry{},
		RiskNotes:    closedNotes,
		GeneratedAt:  c.now(),
	}
}
