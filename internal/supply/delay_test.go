package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plantpulse/plantpulse/pkg/types"
)

func TestSupplierMetrics_NoSupplierUsesNeutralDefaults(t *testing.T) {
	part := types.SparePart{LeadTimeDays: 14}

	reliability, leadTime, onTimeRate := supplierMetrics(part, nil)
	assert.Equal(t, defaultReliability, reliability)
	assert.Equal(t, 14.0, leadTime)
	assert.Equal(t, defaultOnTimeRate, onTimeRate)
}

func TestSupplierMetrics_SupplierOverridesPart(t *testing.T) {
	part := types.SparePart{LeadTimeDays: 14}
	supplier := &types.Supplier{
		ReliabilityScore:    88,
		AverageLeadTimeDays: 12,
		OnTimeDeliveryRate:  92,
	}

	reliability, leadTime, onTimeRate := supplierMetrics(part, supplier)
	assert.Equal(t, 88.0, reliability)
	assert.Equal(t, 12.0, leadTime)
	assert.Equal(t, 92.0, onTimeRate)
}

func TestPredictDelay(t *testing.T) {
	// (100-88)/100 * 12 * 0.3 + (100-92)/100 * 12 * 0.2 = 0.432 + 0.192
	got := predictDelay(88, 12, 92, 0)
	assert.InDelta(t, 0.624, got, 1e-9)
}

func TestPredictDelay_FlooredAtZero(t *testing.T) {
	// A perfect supplier plus the most negative jitter cannot go below zero.
	got := predictDelay(100, 10, 100, -0.5)
	assert.Equal(t, 0.0, got)
}

func TestPredictDelay_WorseSupplierLongerDelay(t *testing.T) {
	good := predictDelay(95, 10, 95, 0)
	bad := predictDelay(40, 10, 50, 0)
	assert.Greater(t, bad, good)
}
