package analytics

import (
	"fmt"

	"MomentumReport/internal/domain/models"
)

// Stance thresholds. All comparisons are strict.
const (
	lowVolatility    = 15.0
	highVolatility   = 25.0
	strongReturnPct  = 0.5
	sellOffReturnPct = -1.0
)

// ClassifierConfig holds the neutral values used when upstream data is unavailable.
type ClassifierConfig struct {
	DefaultVolatility float64
	DefaultTrend      float64
}

// DefaultClassifierConfig treats VIX 20 with a flat index as neutral/unknown.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{DefaultVolatility: 20.0, DefaultTrend: 0.0}
}

// Classifier maps a MarketSignal to a Stance. It holds no mutable state.
type Classifier struct {
	cfg ClassifierConfig
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// DefaultSignal is the sentinel signal for runs without market data.
func (c *Classifier) DefaultSignal() models.MarketSignal {
	return models.MarketSignal{
		VolatilityIndex: c.cfg.DefaultVolatility,
		IndexReturnPct:  c.cfg.DefaultTrend,
		Source:          models.SourceDefault,
	}
}

// Classify returns the stance for signal and a reason embedding the inputs.
// First matching rule wins.
func (c *Classifier) Classify(signal models.MarketSignal) (models.Stance, string) {
	return Classify(signal)
}

// Classify is the pure classification rule set.
func Classify(s models.MarketSignal) (models.Stance, string) {
	vix, ret := s.VolatilityIndex, s.IndexReturnPct

	switch {
	case vix < lowVolatility && ret > strongReturnPct:
		return models.StanceAggressiveBuy,
			fmt.Sprintf("VIX=%.1f (%+.1f%%) low volatility, SPY %+.1f%% advancing on volume", vix, s.VolatilityChangePct, ret)
	case vix > highVolatility || ret < sellOffReturnPct:
		return models.StanceHoldCash,
			fmt.Sprintf("VIX=%.1f (%+.1f%%) high volatility, SPY %+.1f%% risk elevated", vix, s.VolatilityChangePct, ret)
	default:
		return models.StanceConservativeBuy,
			fmt.Sprintf("VIX=%.1f neutral, SPY %+.1f%% range-bound", vix, ret)
	}
}
