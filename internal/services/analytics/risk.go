package analytics

import (
	"fmt"
	"strings"

	"MomentumReport/internal/domain/models"
)

const elevatedVolatility = 20.0

var riskPolicies = map[models.Stance]string{
	models.StanceAggressiveBuy: "- Up to 70-80% exposure, concentrate on high-conviction setups\n" +
		"- Single position may be raised to 25%",
	models.StanceConservativeBuy: "- Use 30-50% exposure, spread across positions\n" +
		"- No more than 3 names, strict stops, max 2% loss per trade",
	models.StanceHoldCash: "- Mostly cash (<20% exposure)\n" +
		"- Wait for a clear market signal, consider defensive sectors",
}

var standingRules = []string{
	"- Single position <= 20% of capital",
	"- Honour stops, total loss <= 2% of capital per day",
	"- Earnings season: watch for single-name shocks",
}

// RiskPolicy is the sizing guidance for a stance.
func RiskPolicy(stance models.Stance) string {
	if p, ok := riskPolicies[stance]; ok {
		return p
	}
	return riskPolicies[models.StanceConservativeBuy]
}

// RiskNotes assembles the risk section: stance policy, a volatility line and
// the standing position rules.
func RiskNotes(stance models.Stance, signal models.MarketSignal) string {
	var b strings.Builder
	b.WriteString(RiskPolicy(stance))
	b.WriteString("\n")

	if signal.VolatilityIndex > elevatedVolatility {
		fmt.Fprintf(&b, "- VIX %.1f, volatility elevated, control position size\n", signal.VolatilityIndex)
	} else {
		fmt.Fprintf(&b, "- VIX %.1f, volatility normal, moderate participation\n", signal.VolatilityIndex)
	}
	b.WriteString(strings.Join(standingRules, "\n"))
	return b.String()
}
