package analytics

import (
	"fmt"
	"sort"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"

	"MomentumReport/internal/domain/models"
)

const (
	// MaxWatchlist caps the number of selected entries.
	MaxWatchlist = 5
	// MinScore is the admission threshold.
	MinScore = 3

	baseProbability = 55
	probabilityStep = 5
	maxProbability  = 85

	minHistory = 5
)

var (
	entryFactor = decimal.RequireFromString("1.01")
	stopFactor  = decimal.RequireFromString("0.97")
)

// Score applies the additive momentum rubric. Every rule is evaluated
// independently, so a +2.5% day earns both the +2 and the +1.
func Score(s models.StockSample) int {
	score := 0
	if s.DailyChangePct > 2.0 {
		score += 2
	}
	if s.DailyChangePct > 0.0 {
		score++
	}
	if s.Price > s.MA5 {
		score++
	}
	if s.Price > s.MA20 {
		score++
	}
	if s.VolumeRatio > 1.5 {
		score += 2
	}
	return score
}

// SuccessProbability maps a score to the capped display probability.
// Not a fitted probability.
func SuccessProbability(score int) int {
	p := baseProbability + score*probabilityStep
	if p > maxProbability {
		return maxProbability
	}
	return p
}

// SelectTop admits samples scoring at least MinScore, orders them by score
// (ties keep scan order) and returns at most MaxWatchlist entries.
func SelectTop(samples []models.StockSample) []models.WatchlistEntry {
	type scored struct {
		sample models.StockSample
		score  int
	}

	eligible := make([]scored, 0, len(samples))
	for _, s := range samples {
		if sc := Score(s); sc >= MinScore {
			eligible = append(eligible, scored{sample: s, score: sc})
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].score > eligible[j].score
	})

	if len(eligible) > MaxWatchlist {
		eligible = eligible[:MaxWatchlist]
	}

	out := make([]models.WatchlistEntry, 0, len(eligible))
	for _, e := range eligible {
		out = append(out, newEntry(e.sample, e.score))
	}
	return out
}

func newEntry(s models.StockSample, score int) models.WatchlistEntry {
	ma5 := decimal.NewFromFloat(s.MA5)
	entry := ma5.Mul(entryFactor).Round(2)
	stop := ma5.Mul(stopFactor).Round(2)

	rationale := s.Rationale
	if rationale == "" {
		rationale = describeMomentum(s)
	}

	return models.WatchlistEntry{
		Symbol:             s.Symbol,
		Rationale:          rationale,
		EntryCondition:     "breakout above $" + entry.StringFixed(2),
		StopLoss:           "< $" + stop.StringFixed(2),
		SuccessProbability: SuccessProbability(score),
		Score:              score,
		Price:              s.Price,
		DailyChangePct:     s.DailyChangePct,
		VolumeRatio:        s.VolumeRatio,
		EntryPrice:         entry.InexactFloat64(),
		StopPrice:          stop.InexactFloat64(),
	}
}

func describeMomentum(s models.StockSample) string {
	desc := fmt.Sprintf("%+.1f%% day", s.DailyChangePct)
	switch {
	case s.Price > s.MA5 && s.Price > s.MA20:
		desc += ", above MA5/MA20"
	case s.Price > s.MA5:
		desc += ", above MA5"
	case s.Price > s.MA20:
		desc += ", above MA20"
	}
	if s.VolumeRatio > 1.5 {
		desc += fmt.Sprintf(", volume %.1fx", s.VolumeRatio)
	}
	return desc
}

// BuildSample derives a StockSample from daily candles, oldest first.
func BuildSample(symbol, rationale string, candles []models.Candle) (models.StockSample, error) {
	if len(candles) < minHistory {
		return models.StockSample{}, fmt.Errorf("%s: %d candles: %w", symbol, len(candles), models.ErrInsufficientHistory)
	}

	closes := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	current := closes[len(closes)-1]
	prev := closes[len(closes)-2]
	var change float64
	if prev > 0 {
		change = (current - prev) / prev * 100
	}

	ma5 := lastSMA(closes, 5)
	ma20 := ma5
	if len(closes) >= 20 {
		ma20 = lastSMA(closes, 20)
	}

	avgVolume := lastSMA(volumes, min(10, len(volumes)))
	volumeRatio := 1.0
	if avgVolume > 0 {
		volumeRatio = volumes[len(volumes)-1] / avgVolume
	}

	return models.StockSample{
		Symbol:         symbol,
		Rationale:      rationale,
		Price:          current,
		DailyChangePct: change,
		MA5:            ma5,
		MA20:           ma20,
		VolumeRatio:    volumeRatio,
	}, nil
}

// lastSMA returns the simple moving average of the trailing period values.
func lastSMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	out := helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))
	if len(out) == 0 {
		return 0
	}
	return out[len(out)-1]
}
