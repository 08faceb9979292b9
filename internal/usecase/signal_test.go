package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MomentumReport/internal/domain/models"
)

func TestSignalFromCandles(t *testing.T) {
	vix := series("^VIX", 20, 19, 21, 18.5)
	spy := series("SPY", 500, 505, 510)

	s, err := SignalFromCandles(vix, spy)
	require.NoError(t, err)
	assert.Equal(t, 18.5, s.VolatilityIndex)
	assert.InDelta(t, -7.5, s.VolatilityChangePct, 1e-9)
	assert.InDelta(t, 2.0, s.IndexReturnPct, 1e-9)
	assert.Equal(t, models.SourceMarket, s.Source)
}

func TestSignalFromCandlesNeedsTwoBars(t *testing.T) {
	_, err := SignalFromCandles(series("^VIX", 20), series("SPY", 500, 505))
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestSignalFromCandlesZeroBase(t *testing.T) {
	s, err := SignalFromCandles(series("^VIX", 0, 18), series("SPY", 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.VolatilityChangePct)
	assert.Equal(t, 0.0, s.IndexReturnPct)
}
