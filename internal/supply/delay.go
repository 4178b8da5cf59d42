// Package supply implements the supply-continuity risk pipeline: delay
// prediction, stockout probability, weighted risk composition, and the
// idempotent risk-record reconciler.
package supply

import (
	"math"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// Neutral defaults substituted when a part has no assigned supplier.
const (
	defaultReliability = 50.0
	defaultOnTimeRate  = 80.0
)

// supplierMetrics resolves the metrics used by the delay and risk models.
// Without a supplier, the part's own lead time and neutral reliability
// figures stand in.
func supplierMetrics(part types.SparePart, supplier *types.Supplier) (reliability, leadTime, onTimeRate float64) {
	if supplier == nil {
		return defaultReliability, part.LeadTimeDays, defaultOnTimeRate
	}
	return supplier.ReliabilityScore, supplier.AverageLeadTimeDays, supplier.OnTimeDeliveryRate
}

// predictDelay estimates extra delivery delay in days. Lower reliability
// and worse on-time rates stretch the lead time; a bounded random term
// models real-world uncertainty. The result is floored at zero.
func predictDelay(reliability, leadTime, onTimeRate, jitter float64) float64 {
	reliabilityFactor := (100 - reliability) / 100
	base := reliabilityFactor * leadTime * 0.3
	variance := (100 - onTimeRate) / 100 * leadTime * 0.2
	return math.Max(0, base+variance+jitter)
}
