package models

// Signal sources, in order of preference.
const (
	SourceMarket  = "market"
	SourceSearch  = "search"
	SourceDefault = "default"
)

// MarketSignal is the scalar market snapshot a report is classified from.
type MarketSignal struct {
	VolatilityIndex     float64 `json:"volatility_index"`
	VolatilityChangePct float64 `json:"volatility_change_pct"`
	IndexReturnPct      float64 `json:"index_return_pct"`
	Source              string  `json:"source"`
}

// Stance is the coarse trading posture derived from a MarketSignal.
type Stance int

const (
	StanceConservativeBuy Stance = iota
	StanceAggressiveBuy
	StanceHoldCash
)

func (s Stance) String() string {
	switch s {
	case StanceAggressiveBuy:
		return "Aggressive Buy"
	case StanceHoldCash:
		return "Hold/Cash"
	default:
		return "Conservative Buy"
	}
}

// Category is a stable lowercase key used for colours, metrics and lookups.
func (s Stance) Category() string {
	switch s {
	case StanceAggressiveBuy:
		return "aggressive"
	case StanceHoldCash:
		return "cash"
	default:
		return "conservative"
	}
}

func (s Stance) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stance) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Aggressive Buy":
		*s = StanceAggressiveBuy
	case "Hold/Cash":
		*s = StanceHoldCash
	default:
		*s = StanceConservativeBuy
	}
	return nil
}
