package supply

import (
	"math"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// InventoryLevelPercent is current stock as a percentage of the reorder
// point. A zero reorder point reports zero rather than dividing by zero.
func InventoryLevelPercent(currentQuantity, minQuantity int) float64 {
	if minQuantity <= 0 {
		return 0
	}
	return float64(currentQuantity) / float64(minQuantity) * 100
}

// RiskScore composes the 0-100 supply risk from independently capped
// components: inventory band (0-40), supplier reliability (0-30),
// predicted delay (0-20), stockout probability (0-10), plus a flat
// penalty for parts already flagged out of or low on stock.
func RiskScore(inventoryPercent, reliability, delayDays, stockoutProbability float64, status types.PartStatus) float64 {
	var inventoryRisk float64
	switch {
	case inventoryPercent <= 0:
		inventoryRisk = 40
	case inventoryPercent < 50:
		inventoryRisk = 35
	case inventoryPercent < 100:
		inventoryRisk = 25
	case inventoryPercent < 150:
		inventoryRisk = 15
	default:
		inventoryRisk = 5
	}

	supplierRisk := (100 - reliability) * 0.3
	delayRisk := math.Min(20, delayDays*2)
	stockoutRisk := stockoutProbability * 0.1

	var statusPenalty float64
	switch status {
	case types.PartOutOfStock:
		statusPenalty = 20
	case types.PartLowStock:
		statusPenalty = 10
	}

	return math.Min(100, inventoryRisk+supplierRisk+delayRisk+stockoutRisk+statusPenalty)
}

// RiskLevelFor buckets a risk score into its coarse level.
func RiskLevelFor(score float64) types.RiskLevel {
	switch {
	case score >= 70:
		return types.RiskCritical
	case score >= 50:
		return types.RiskHigh
	case score >= 30:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// UrgencyFor mirrors the risk level as the coarse urgency recorded on the
// risk record.
func UrgencyFor(score float64) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 50:
		return "medium"
	default:
		return "low"
	}
}
