package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MomentumReport/internal/domain/models"
)

func TestIsTradingDay(t *testing.T) {
	assert.True(t, IsTradingDay(monday))
	assert.True(t, IsTradingDay(monday.AddDate(0, 0, 4)))
	assert.False(t, IsTradingDay(saturday))
	assert.False(t, IsTradingDay(saturday.AddDate(0, 0, 1)))
}

func TestComposeTradingDay(t *testing.T) {
	c := NewReportComposer("Marcus")
	fixed := time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	signal := models.MarketSignal{VolatilityIndex: 18.5, IndexReturnPct: 0.2, Source: models.SourceMarket}
	wl := []models.WatchlistEntry{{Symbol: "NVDA"}, {Symbol: "AMD"}}

	doc := c.Compose(monday, models.StanceConservativeBuy, "reason", signal, wl, "risk")
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "2026-10-19", doc.Date)
	assert.Equal(t, "Marcus", doc.Trader)
	assert.False(t, doc.MarketClosed)
	assert.Equal(t, models.StanceConservativeBuy, doc.Stance)
	assert.Equal(t, signal, doc.Signal)
	assert.Equal(t, "risk", doc.RiskNotes)
	assert.Equal(t, fixed, doc.GeneratedAt)

	wl[0].Symbol = "CHANGED"
	assert.Equal(t, "NVDA", doc.Watchlist[0].Symbol, "document owns its watchlist")
}

func TestComposeWeekendIgnoresInputs(t *testing.T) {
	c := NewReportComposer("Marcus")
	signal := models.MarketSignal{VolatilityIndex: 12, IndexReturnPct: 3}

	doc := c.Compose(saturday, models.StanceAggressiveBuy, "ignored", signal,
		[]models.WatchlistEntry{{Symbol: "NVDA"}}, "ignored")

	assert.True(t, doc.MarketClosed)
	assert.Equal(t, "2026-10-17", doc.Date)
	assert.Empty(t, doc.Watchlist)
	assert.Equal(t, closedReason, doc.Reason)
	assert.Equal(t, models.MarketSignal{}, doc.Signal)

	closed := c.ClosedDocument(saturday)
	assert.Equal(t, closed.Reason, doc.Reason)
	assert.Equal(t, closed.RiskNotes, doc.RiskNotes)
	assert.Equal(t, closed.Stance, doc.Stance)
	assert.NotEqual(t, closed.ID, doc.ID)
}
