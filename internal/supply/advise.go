package supply

import (
	"fmt"
	"math"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// Recommendations returns the ordered list of supply-chain actions for
// the assessment. When nothing triggers it falls back to a healthy
// statement, never an empty list.
func Recommendations(riskScore, inventoryPercent, stockoutProbability, delayDays float64, part types.SparePart) []string {
	var recs []string

	if riskScore >= 70 {
		recs = append(recs,
			"URGENT: Place immediate order for spare parts",
			"Consider alternative suppliers",
			"Expedite delivery if possible",
		)
	} else if riskScore >= 50 {
		recs = append(recs,
			"Place order before stock reaches minimum threshold",
			"Monitor supplier delivery status closely",
		)
	}

	if inventoryPercent < 100 {
		qty := math.Max(float64(part.MinQuantity)*2, float64(part.MaxQuantity)*0.5)
		recs = append(recs, fmt.Sprintf("Consider ordering %d units", int(qty)))
	}

	if delayDays > 3 {
		recs = append(recs, fmt.Sprintf("Account for expected delay of %.1f days in planning", delayDays))
	}

	if stockoutProbability > 50 {
		recs = append(recs,
			"Implement emergency procurement procedures",
			"Notify production planning team",
		)
	}

	if len(recs) == 0 {
		recs = append(recs,
			"Inventory levels are healthy",
			"Continue regular monitoring",
		)
	}
	return recs
}
