package config

import "strings"

// DefaultUniverse is the momentum scan list used when none is configured.
func DefaultUniverse() []UniverseEntry {
	return []UniverseEntry{
		{Symbol: "NVDA", Rationale: "AI chip leader, strong data-center demand"},
		{Symbol: "TSLA", Rationale: "High beta, FSD catalysts"},
		{Symbol: "AMD", Rationale: "Semiconductor recovery, AI accelerator catch-up"},
		{Symbol: "AAPL"},
		{Symbol: "MSFT"},
		{Symbol: "GOOGL"},
		{Symbol: "META", Rationale: "Ad revenue growth, buyback support"},
		{Symbol: "AMZN"},
		{Symbol: "NFLX"},
		{Symbol: "COIN", Rationale: "Crypto bellwether, BTC correlation"},
		{Symbol: "PLTR"},
		{Symbol: "SMCI"},
		{Symbol: "AVGO"},
		{Symbol: "CRM"},
		{Symbol: "ORCL"},
		{Symbol: "MRNA"},
		{Symbol: "BNTX"},
		{Symbol: "REGN"},
		{Symbol: "VRTX"},
		{Symbol: "GILD"},
	}
}

// ParseUniverse turns "NVDA,TSLA, amd" into universe entries, keeping
// rationales from the default list where the symbol is known.
func ParseUniverse(s string) []UniverseEntry {
	known := make(map[string]string)
	for _, u := range DefaultUniverse() {
		known[u.Symbol] = u.Rationale
	}

	var out []UniverseEntry
	for _, part := range strings.Split(s, ",") {
		sym := strings.ToUpper(strings.TrimSpace(part))
		if sym == "" {
			continue
		}
		out = append(out, UniverseEntry{Symbol: sym, Rationale: known[sym]})
	}
	return out
}
