package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MomentumReport/internal/domain/models"
)

func sample(symbol string, change, price, ma5, ma20, vol float64) models.StockSample {
	return models.StockSample{
		Symbol:         symbol,
		Price:          price,
		DailyChangePct: change,
		MA5:            ma5,
		MA20:           ma20,
		VolumeRatio:    vol,
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		s    models.StockSample
		want int
	}{
		{"everything fires", sample("A", 2.5, 110, 100, 100, 1.6), 7},
		{"small up day", sample("B", 0.5, 90, 100, 100, 1.0), 1},
		{"exactly 2 percent", sample("C", 2.0, 90, 100, 100, 1.0), 1},
		{"down day above averages", sample("D", -0.3, 110, 100, 105, 1.0), 2},
		{"volume only", sample("E", 0, 90, 100, 100, 1.51), 2},
		{"volume boundary", sample("F", 0, 90, 100, 100, 1.5), 0},
		{"price equals ma", sample("G", 1, 100, 100, 100, 1.0), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.s))
		})
	}
}

func TestSuccessProbability(t *testing.T) {
	assert.Equal(t, 70, SuccessProbability(3))
	assert.Equal(t, 80, SuccessProbability(5))
	assert.Equal(t, 85, SuccessProbability(6))
	assert.Equal(t, 85, SuccessProbability(7))

	prev := 0
	for score := 0; score <= 7; score++ {
		p := SuccessProbability(score)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestSelectTopFullScoreEntry(t *testing.T) {
	got := SelectTop([]models.StockSample{sample("NVDA", 2.5, 150, 140, 130, 1.6)})
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "NVDA", e.Symbol)
	assert.Equal(t, 7, e.Score)
	assert.Equal(t, 85, e.SuccessProbability)
	assert.InDelta(t, 141.40, e.EntryPrice, 1e-9)
	assert.InDelta(t, 135.80, e.StopPrice, 1e-9)
	assert.Equal(t, "breakout above $141.40", e.EntryCondition)
	assert.Equal(t, "< $135.80", e.StopLoss)
	assert.Contains(t, e.Rationale, "+2.5% day")
	assert.Contains(t, e.Rationale, "volume 1.6x")
}

func TestSelectTopThresholdOrderAndCap(t *testing.T) {
	samples := []models.StockSample{
		sample("LOW", 0.5, 90, 100, 100, 1.0),   // 1, rejected
		sample("T1", 1.0, 110, 100, 100, 1.0),   // 3
		sample("TOP", 2.5, 110, 100, 100, 2.0),  // 7
		sample("T2", 1.0, 110, 100, 100, 1.0),   // 3
		sample("MID", 3.0, 110, 100, 120, 1.0),  // 4
		sample("T3", 1.0, 110, 100, 100, 1.0),   // 3
		sample("T4", 1.0, 110, 100, 100, 1.0),   // 3
		sample("EDGE", 0.0, 110, 100, 100, 1.0), // 2, rejected
	}

	got := SelectTop(samples)
	require.Len(t, got, MaxWatchlist)

	symbols := make([]string, len(got))
	for i, e := range got {
		symbols[i] = e.Symbol
	}
	assert.Equal(t, []string{"TOP", "MID", "T1", "T2", "T3"}, symbols)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
		assert.GreaterOrEqual(t, got[i-1].SuccessProbability, got[i].SuccessProbability)
	}
}

func TestSelectTopIsIdempotent(t *testing.T) {
	samples := []models.StockSample{
		sample("A", 1.0, 110, 100, 100, 1.0),
		sample("B", 2.5, 110, 100, 100, 2.0),
		sample("C", 1.0, 110, 100, 100, 1.0),
		sample("D", 3.0, 110, 100, 120, 1.0),
	}
	first := SelectTop(samples)
	second := SelectTop(samples)
	assert.Equal(t, first, second)
	assert.Equal(t, "A", samples[0].Symbol, "input must not be reordered")
}

func TestSelectTopEmpty(t *testing.T) {
	assert.Empty(t, SelectTop(nil))
	assert.Empty(t, SelectTop([]models.StockSample{sample("X", -1, 90, 100, 100, 1)}))
}

func TestSelectTopKeepsConfiguredRationale(t *testing.T) {
	s := sample("META", 2.5, 110, 100, 100, 2.0)
	s.Rationale = "buyback support"
	got := SelectTop([]models.StockSample{s})
	require.Len(t, got, 1)
	assert.Equal(t, "buyback support", got[0].Rationale)
}

func candles(closes, volumes []float64) []models.Candle {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, len(closes))
	for i := range closes {
		out[i] = models.Candle{Bucket: start.AddDate(0, 0, i), Symbol: "TST", Close: closes[i], Volume: volumes[i]}
	}
	return out
}

func TestBuildSampleShortHistory(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15}
	volumes := []float64{100, 100, 100, 100, 100, 400}

	s, err := BuildSample("TST", "", candles(closes, volumes))
	require.NoError(t, err)

	assert.Equal(t, 15.0, s.Price)
	assert.InDelta(t, 100.0/14.0, s.DailyChangePct, 1e-9)
	assert.InDelta(t, 13.0, s.MA5, 1e-9)
	assert.InDelta(t, s.MA5, s.MA20, 1e-9, "fewer than 20 bars falls back to MA5")
	assert.InDelta(t, 400.0/150.0, s.VolumeRatio, 1e-9)
	assert.Equal(t, 7, Score(s))
}

func TestBuildSampleFullHistory(t *testing.T) {
	closes := make([]float64, 22)
	volumes := make([]float64, 22)
	for i := range closes {
		closes[i] = float64(100 + i)
		volumes[i] = 1000
	}

	s, err := BuildSample("TST", "why", candles(closes, volumes))
	require.NoError(t, err)

	assert.Equal(t, "why", s.Rationale)
	assert.InDelta(t, 119.0, s.MA5, 1e-9)  // mean of 117..121
	assert.InDelta(t, 111.5, s.MA20, 1e-9) // mean of 102..121
	assert.InDelta(t, 1.0, s.VolumeRatio, 1e-9)
}

func TestBuildSampleInsufficientHistory(t *testing.T) {
	_, err := BuildSample("TST", "", candles([]float64{1, 2, 3, 4}, []float64{1, 1, 1, 1}))
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestBuildSampleZeroVolume(t *testing.T) {
	s, err := BuildSample("TST", "", candles([]float64{1, 1, 1, 1, 1}, []float64{0, 0, 0, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.VolumeRatio)
	assert.Equal(t, 0.0, s.DailyChangePct)
}
