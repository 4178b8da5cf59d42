package supply

import (
	"math"
	"time"
)

// StockoutProbability estimates the 0-100 chance the part runs out before
// resupply arrives. Zero stock is a certain stockout; stock at or below
// the reorder point is scored against the total lead time; healthy stock
// is scored on its buffer above the reorder point.
func StockoutProbability(currentQuantity, minQuantity int, leadTimeDays, delayDays float64) float64 {
	if currentQuantity <= 0 {
		return 100
	}

	if currentQuantity <= minQuantity {
		var daysRemaining float64
		if minQuantity > 0 {
			daysRemaining = float64(currentQuantity) / float64(minQuantity) * 7
		}
		totalLead := leadTimeDays + delayDays
		if daysRemaining < totalLead {
			return math.Min(100, 50+(totalLead-daysRemaining)*10)
		}
		return 30
	}

	buffer := 1.0
	if minQuantity > 0 {
		buffer = float64(currentQuantity-minQuantity) / float64(minQuantity)
	}
	if buffer < 0.5 {
		return 20 + (0.5-buffer)*40
	}
	return math.Max(0, 10-buffer*5)
}

// EstimateStockoutDate projects when stock could hit zero under a flat
// consumption-rate heuristic (a typical part burns down to its reorder
// point in about 30 days). Returns nil when resupply would land first.
// TODO: replace the flat-rate assumption once per-part consumption
// history is recorded.
func EstimateStockoutDate(now time.Time, currentQuantity int, totalLeadTimeDays float64) *time.Time {
	if currentQuantity <= 0 {
		return &now
	}

	daysUntilMin := float64(currentQuantity) * 30 / 50
	if daysUntilMin < totalLeadTimeDays {
		d := now.Add(time.Duration(daysUntilMin * 24 * float64(time.Hour)))
		return &d
	}
	return nil
}
