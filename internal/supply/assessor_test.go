package supply

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/internal/store/memory"
	"github.com/plantpulse/plantpulse/pkg/types"
)

func testPart() types.SparePart {
	return types.SparePart{
		ID:              "part-bearing-6204",
		Name:            "Bearing 6204",
		CurrentQuantity: 14,
		MinQuantity:     10,
		MaxQuantity:     60,
		LeadTimeDays:    12,
		Status:          types.PartInStock,
		SupplierID:      "sup-acme",
	}
}

func testSupplier() *types.Supplier {
	return &types.Supplier{
		ID:                  "sup-acme",
		Name:                "Acme Industrial",
		ReliabilityScore:    88,
		AverageLeadTimeDays: 12,
		OnTimeDeliveryRate:  92,
	}
}

func TestAssessor_Assess(t *testing.T) {
	st := memory.New()
	a := NewAssessor(st, WithSeed(1))

	rec, err := a.Assess(context.Background(), testPart(), testSupplier())
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "part-bearing-6204", rec.PartID)
	assert.Equal(t, "sup-acme", rec.SupplierID)
	assert.InDelta(t, 140, rec.InventoryLevelPercent, 1e-9)
	assert.InDelta(t, 88, rec.SupplierReliability, 1e-9)
	assert.GreaterOrEqual(t, rec.PredictedDelayDays, 0.0)
	assert.GreaterOrEqual(t, rec.RiskScore, 0.0)
	assert.LessOrEqual(t, rec.RiskScore, 100.0)
	assert.NotEmpty(t, rec.AllRecommendations)
	assert.Equal(t, rec.AllRecommendations[0], rec.RecommendedAction)
	assert.False(t, rec.CreatedAt.IsZero())

	// The record must be durably retrievable by part.
	stored, err := st.GetRiskAssessment(context.Background(), rec.PartID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, stored.ID)
}

func TestAssessor_SeededDelayIsReproducible(t *testing.T) {
	a := NewAssessor(memory.New(), WithSeed(7))
	b := NewAssessor(memory.New(), WithSeed(7))

	recA, err := a.Assess(context.Background(), testPart(), testSupplier())
	require.NoError(t, err)
	recB, err := b.Assess(context.Background(), testPart(), testSupplier())
	require.NoError(t, err)

	assert.Equal(t, recA.PredictedDelayDays, recB.PredictedDelayDays)
	assert.Equal(t, recA.RiskScore, recB.RiskScore)
}

func TestAssessor_ReassessPreservesRecordIdentity(t *testing.T) {
	st := memory.New()
	a := NewAssessor(st, WithSeed(3))

	first, err := a.Assess(context.Background(), testPart(), testSupplier())
	require.NoError(t, err)

	// Same part again: one live record, original identity preserved.
	second, err := a.Assess(context.Background(), testPart(), testSupplier())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	all, err := st.ListRiskAssessments(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssessor_NoSupplierUsesNeutralDefaults(t *testing.T) {
	part := testPart()
	part.SupplierID = ""

	a := NewAssessor(memory.New(), WithSeed(5))
	rec, err := a.Assess(context.Background(), part, nil)
	require.NoError(t, err)

	assert.Empty(t, rec.SupplierID)
	assert.InDelta(t, defaultReliability, rec.SupplierReliability, 1e-9)
}

func TestAssessor_LowStockNoSupplierIsHighRisk(t *testing.T) {
	part := types.SparePart{
		ID:              "part-belt-b42",
		Name:            "Drive Belt B42",
		CurrentQuantity: 3,
		MinQuantity:     5,
		MaxQuantity:     30,
		LeadTimeDays:    12,
		Status:          types.PartLowStock,
	}

	a := NewAssessor(memory.New(), WithSeed(11))
	rec, err := a.Assess(context.Background(), part, nil)
	require.NoError(t, err)

	// Three units burn down well before neutral-default resupply lands.
	assert.InDelta(t, 100, rec.StockoutProbability, 1e-9)
	assert.Contains(t, []types.RiskLevel{types.RiskHigh, types.RiskCritical}, rec.RiskLevel)
	assert.NotNil(t, rec.EstimatedStockoutDate)
	assert.Contains(t, rec.AllRecommendations, "Place order before stock reaches minimum threshold")
}

// brokenStore fails every risk upsert; untouched methods panic through
// the nil embedded interface, which the assessor never reaches.
type brokenStore struct {
	store.Store
}

func (brokenStore) UpsertRiskAssessment(context.Context, types.SupplyRiskAssessment) (*types.SupplyRiskAssessment, error) {
	return nil, errors.New("backend down")
}

func TestAssessor_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	a := NewAssessor(brokenStore{}, WithSeed(9))

	// The very first failed write is already tagged as unavailable, not
	// just the fast-fail rejections after the breaker trips.
	_, firstErr := a.Assess(context.Background(), testPart(), testSupplier())
	require.Error(t, firstErr)
	assert.ErrorIs(t, firstErr, store.ErrUnavailable)

	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = a.Assess(context.Background(), testPart(), testSupplier())
		require.Error(t, lastErr)
	}
	assert.ErrorIs(t, lastErr, store.ErrUnavailable)
}
