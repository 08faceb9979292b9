package usecase

import (
	"fmt"

	"MomentumReport/internal/domain/models"
)

// SignalFromCandles derives a market signal from a volatility-index series and
// a broad-index series over the same window, both oldest first.
func SignalFromCandles(volatility, index []models.Candle) (models.MarketSignal, error) {
	if len(volatility) < 2 || len(index) < 2 {
		return models.MarketSignal{}, fmt.Errorf("signal needs at least 2 bars, got vix=%d index=%d: %w",
			len(volatility), len(index), models.ErrInsufficientHistory)
	}

	return models.MarketSignal{
		VolatilityIndex:     volatility[len(volatility)-1].Close,
		VolatilityChangePct: pctChange(volatility[0].Close, volatility[len(volatility)-1].Close),
		IndexReturnPct:      pctChange(index[0].Close, index[len(index)-1].Close),
		Source:              models.SourceMarket,
	}, nil
}

func pctChange(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}
