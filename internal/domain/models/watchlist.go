package models

// StockSample is the per-symbol snapshot the watchlist scorer works on.
type StockSample struct {
	Symbol         string
	Rationale      string
	Price          float64
	DailyChangePct float64
	MA5            float64
	MA20           float64
	VolumeRatio    float64 // today's volume / 10-day average volume
}

// WatchlistEntry is one ranked watchlist line.
type WatchlistEntry struct {
	Symbol             string  `json:"symbol"`
	Rationale          string  `json:"rationale"`
	EntryCondition     string  `json:"entry_condition"`
	StopLoss           string  `json:"stop_loss"`
	SuccessProbability int     `json:"success_probability"`
	Score              int     `json:"score"`
	Price              float64 `json:"price"`
	DailyChangePct     float64 `json:"daily_change_pct"`
	VolumeRatio        float64 `json:"volume_ratio"`
	EntryPrice         float64 `json:"entry_price"`
	StopPrice          float64 `json:"stop_price"`
}
