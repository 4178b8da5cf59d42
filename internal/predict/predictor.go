package predict

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plantpulse/plantpulse/internal/metrics"
	"github.com/plantpulse/plantpulse/pkg/types"
)

// Predictor runs the full fault-prediction pipeline for one machine
// window. It owns the process-lifetime density model; everything else is
// a pure per-call computation, so a single Predictor is safe for
// concurrent use.
type Predictor struct {
	density *DensityScorer
}

// NewPredictor creates a Predictor with an unfitted density model.
func NewPredictor() *Predictor {
	return &Predictor{density: NewDensityScorer()}
}

// Predict scores a chronologically ordered window of readings against the
// machine's limits. It fails with ErrInsufficientData when the window has
// fewer than MinWindow readings; it never fails for out-of-range
// telemetry, which is clamped instead.
func (p *Predictor) Predict(ctx context.Context, limits types.MachineLimits, window []types.SensorReading) (*types.PredictionResult, error) {
	if err := validateWindow(window); err != nil {
		metrics.Inc(ctx, metrics.PredictionErrors)
		return nil, err
	}

	features := featureMatrix(window)
	latest := window[len(window)-1]

	var anomalyScore, reconstructionScore, healthScore float64
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		anomalyScore = p.density.Score(features)
		return nil
	})
	g.Go(func() error {
		reconstructionScore = ReconstructionScore(features)
		return nil
	})
	g.Go(func() error {
		healthScore = HealthScore(limits, latest)
		return nil
	})
	_ = g.Wait()

	faultProbability := FaultProbability(anomalyScore, reconstructionScore, limits, window)

	result := &types.PredictionResult{
		MachineID:        latest.MachineID,
		FaultProbability: round2(faultProbability),
		AnomalyScore:     round2(anomalyScore),
		HealthScore:      round2(healthScore),
		FailureWindow:    FailureWindowFor(faultProbability),
		AlertLevel:       AlertLevelFor(faultProbability, healthScore),
		RiskFactors:      RiskFactors(limits, window),
		Recommendations:  Recommendations(faultProbability, healthScore, latest),
		Timestamp:        time.Now().UTC(),
	}

	metrics.Inc(ctx, metrics.PredictionsTotal)
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
