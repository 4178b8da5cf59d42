package supply

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sony/gobreaker"

	"github.com/plantpulse/plantpulse/internal/metrics"
	"github.com/plantpulse/plantpulse/internal/store"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// Bounds of the uniform random term added to delay predictions, in days.
const (
	jitterMin = -0.5
	jitterMax = 1.0
)

// Assessor computes supply risk assessments and reconciles the one-per-
// part risk record through the store's atomic upsert. A circuit breaker
// fails writes fast while storage is down; the engine itself never
// retries.
type Assessor struct {
	store   store.Store
	breaker *gobreaker.CircuitBreaker

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithSeed fixes the random source so delay predictions are reproducible.
func WithSeed(seed uint64) Option {
	return func(a *Assessor) {
		a.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// NewAssessor creates an Assessor backed by the given store.
func NewAssessor(st store.Store, opts ...Option) *Assessor {
	a := &Assessor{
		store: st,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "risk-upsert",
		}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess runs the full supply-risk pipeline for a part and its optional
// supplier snapshot, persists the assessment through the reconciling
// upsert, and returns the record as written.
func (a *Assessor) Assess(ctx context.Context, part types.SparePart, supplier *types.Supplier) (*types.SupplyRiskAssessment, error) {
	reliability, leadTime, onTimeRate := supplierMetrics(part, supplier)

	inventoryPercent := InventoryLevelPercent(part.CurrentQuantity, part.MinQuantity)
	delayDays := predictDelay(reliability, leadTime, onTimeRate, a.jitter())
	stockoutProb := StockoutProbability(part.CurrentQuantity, part.MinQuantity, leadTime, delayDays)

	now := time.Now().UTC()
	stockoutDate := EstimateStockoutDate(now, part.CurrentQuantity, leadTime+delayDays)

	riskScore := RiskScore(inventoryPercent, reliability, delayDays, stockoutProb, part.Status)
	recs := Recommendations(riskScore, inventoryPercent, stockoutProb, delayDays, part)

	supplierID := ""
	if supplier != nil {
		supplierID = supplier.ID
	}

	rec := &types.SupplyRiskAssessment{
		ID:                    ulid.Make().String(),
		PartID:                part.ID,
		SupplierID:            supplierID,
		RiskLevel:             RiskLevelFor(riskScore),
		RiskScore:             round2(riskScore),
		PredictedDelayDays:    round2(delayDays),
		StockoutProbability:   round2(stockoutProb),
		EstimatedStockoutDate: stockoutDate,
		InventoryLevelPercent: round2(inventoryPercent),
		SupplierReliability:   round2(reliability),
		RecommendedAction:     recs[0],
		AllRecommendations:    recs,
		Urgency:               UrgencyFor(riskScore),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	stored, err := a.breaker.Execute(func() (interface{}, error) {
		return a.store.UpsertRiskAssessment(ctx, *rec)
	})
	if err != nil {
		metrics.Inc(ctx, metrics.RiskUpsertsFailed)
		metrics.Inc(ctx, metrics.AssessmentErrors)
		// Every failed write means storage could not take the record,
		// whether the backend refused or the breaker rejected the call.
		if errors.Is(err, store.ErrUnavailable) {
			return nil, fmt.Errorf("storing risk assessment: %w", err)
		}
		return nil, fmt.Errorf("storing risk assessment: %w: %v", store.ErrUnavailable, err)
	}
	metrics.Inc(ctx, metrics.RiskUpserts)
	metrics.Inc(ctx, metrics.AssessmentsTotal)

	return stored.(*types.SupplyRiskAssessment), nil
}

// jitter draws the bounded uniform delay perturbation.
func (a *Assessor) jitter() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return jitterMin + a.rng.Float64()*(jitterMax-jitterMin)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
