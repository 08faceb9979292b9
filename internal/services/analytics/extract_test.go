package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVolatilityIndex(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"colon", "Futures flat, VIX: 17.85 ahead of CPI", 17.85, true},
		{"space", "The VIX 22 reading is the highest this month", 22, true},
		{"lowercase", "vix: 14.2", 14.2, true},
		{"long form", "CBOE Volatility Index: 19.4 on Friday", 19.4, true},
		{"first match wins", "VIX 16.1 earlier, VIX 18.0 now", 16.1, true},
		{"no number", "VIX rallied sharply", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseVolatilityIndex(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestExtractHeadlines(t *testing.T) {
	text := "\n  Stocks open higher  \n\nFed speakers in focus\nOil slips\nNVDA extends gains\nBonds steady\nDollar mixed\n"

	got := ExtractHeadlines(text, 5)
	assert.Equal(t, []string{
		"Stocks open higher",
		"Fed speakers in focus",
		"Oil slips",
		"NVDA extends gains",
		"Bonds steady",
	}, got)

	assert.Len(t, ExtractHeadlines("one\ntwo", 5), 2)
	assert.Nil(t, ExtractHeadlines(text, 0))
}
