package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plantpulse/plantpulse/pkg/types"
)

func TestRecommendations_Healthy(t *testing.T) {
	part := types.SparePart{MinQuantity: 10, MaxQuantity: 60}
	got := Recommendations(20, 140, 5, 0.5, part)
	assert.Equal(t, []string{
		"Inventory levels are healthy",
		"Continue regular monitoring",
	}, got)
}

func TestRecommendations_CriticalRisk(t *testing.T) {
	part := types.SparePart{MinQuantity: 8, MaxQuantity: 40}
	got := Recommendations(85, 40, 90, 6.2, part)
	assert.Equal(t, []string{
		"URGENT: Place immediate order for spare parts",
		"Consider alternative suppliers",
		"Expedite delivery if possible",
		"Consider ordering 20 units",
		"Account for expected delay of 6.2 days in planning",
		"Implement emergency procurement procedures",
		"Notify production planning team",
	}, got)
}

func TestRecommendations_ElevatedRisk(t *testing.T) {
	part := types.SparePart{MinQuantity: 10, MaxQuantity: 100}
	got := Recommendations(55, 80, 30, 1, part)
	assert.Equal(t, []string{
		"Place order before stock reaches minimum threshold",
		"Monitor supplier delivery status closely",
		"Consider ordering 50 units",
	}, got)
}

func TestRecommendations_OrderQuantityUsesLargerHeuristic(t *testing.T) {
	// 2*min = 16 beats 0.5*max = 10.
	part := types.SparePart{MinQuantity: 8, MaxQuantity: 20}
	got := Recommendations(20, 50, 5, 0, part)
	assert.Contains(t, got, "Consider ordering 16 units")
}
