package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MomentumReport/internal/domain/models"
)

func TestRiskPolicyIsPerStance(t *testing.T) {
	agg := RiskPolicy(models.StanceAggressiveBuy)
	con := RiskPolicy(models.StanceConservativeBuy)
	cash := RiskPolicy(models.StanceHoldCash)

	assert.Contains(t, agg, "70-80%")
	assert.Contains(t, con, "30-50%")
	assert.Contains(t, cash, "<20%")
	assert.NotEqual(t, agg, con)
	assert.NotEqual(t, con, cash)
}

func TestRiskNotesVolatilityLine(t *testing.T) {
	high := RiskNotes(models.StanceHoldCash, models.MarketSignal{VolatilityIndex: 27.3})
	assert.Contains(t, high, "VIX 27.3, volatility elevated")
	assert.Contains(t, high, "<20%")

	normal := RiskNotes(models.StanceConservativeBuy, models.MarketSignal{VolatilityIndex: 20.0})
	assert.Contains(t, normal, "VIX 20.0, volatility normal")
	assert.Contains(t, normal, "20% of capital")
}
