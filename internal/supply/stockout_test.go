package supply

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockoutProbability(t *testing.T) {
	tests := []struct {
		name         string
		current, min int
		lead, delay  float64
		want         float64
	}{
		{"zero stock is certain", 0, 10, 12, 0, 100},
		{"negative stock is certain", -1, 10, 12, 0, 100},
		{"below reorder point, resupply too slow", 5, 10, 12, 0, 100},
		{"below reorder point, moderate lead", 5, 10, 7, 0, 85},
		{"below reorder point, resupply in time", 9, 10, 1, 0, 30},
		{"thin buffer above reorder point", 12, 10, 12, 0, 32},
		{"comfortable buffer", 20, 10, 12, 0, 5},
		{"deep buffer floors at zero", 30, 10, 12, 0, 0},
		{"delay stretches total lead", 5, 10, 7, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StockoutProbability(tt.current, tt.min, tt.lead, tt.delay)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestStockoutProbability_ZeroReorderPoint(t *testing.T) {
	// min=0 with stock on hand: the buffer branch treats the buffer as
	// ample rather than dividing by zero.
	got := StockoutProbability(5, 0, 12, 0)
	assert.InDelta(t, 5, got, 1e-9)
}

func TestEstimateStockoutDate_ZeroStockIsNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := EstimateStockoutDate(now, 0, 12)
	require.NotNil(t, got)
	assert.Equal(t, now, *got)
}

func TestEstimateStockoutDate_BeforeResupply(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// 10 units burn down in 6 days, resupply takes 12.
	got := EstimateStockoutDate(now, 10, 12)
	require.NotNil(t, got)
	assert.Equal(t, now.Add(6*24*time.Hour), *got)
}

func TestEstimateStockoutDate_ResupplyLandsFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// 50 units last 30 days, resupply takes 12: no stockout predicted.
	assert.Nil(t, EstimateStockoutDate(now, 50, 12))
}
