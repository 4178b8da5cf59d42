package predict

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/plantpulse/plantpulse/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPredictor_InsufficientData(t *testing.T) {
	p := NewPredictor()
	window := flatWindow(9, types.SensorReading{MachineID: "m1", Temperature: 50})

	_, err := p.Predict(context.Background(), types.MachineLimits{}, window)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredictor_SteadyStateIsGreen(t *testing.T) {
	limits := types.MachineLimits{
		MaxRPM:         8000,
		MaxTemperature: 85,
		MaxVibration:   12,
		MaxLoad:        100,
	}
	window := flatWindow(10, types.SensorReading{
		MachineID:     "m1",
		Vibration:     3,
		Temperature:   50,
		AcousticNoise: 70,
		Load:          60,
		RPM:           7200,
	})

	p := NewPredictor()
	result, err := p.Predict(context.Background(), limits, window)
	require.NoError(t, err)

	assert.Equal(t, "m1", result.MachineID)
	assert.InDelta(t, 100, result.HealthScore, 1e-9)
	assert.InDelta(t, 0, result.AnomalyScore, 1e-9)
	assert.InDelta(t, 0, result.FaultProbability, 1e-9)
	assert.Equal(t, types.AlertGreen, result.AlertLevel)
	assert.Equal(t, types.WindowNone, result.FailureWindow)
	assert.Equal(t, []string{"All parameters within normal range"}, result.RiskFactors)
	assert.False(t, result.Timestamp.IsZero())
}

func TestPredictor_DegradedMachineGoesRed(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 12}
	window := flatWindow(10, types.SensorReading{
		MachineID:   "m2",
		Temperature: 80,
		Vibration:   8,
		Load:        99,
	})
	// Final five readings ramp past the threshold and trend lines.
	for i := 5; i < 10; i++ {
		window[i].Temperature = 80 + float64(i-5)*4 // ends at 96
		window[i].Vibration = 8 + float64(i-5)*0.8  // ends at 11.2
	}

	p := NewPredictor()
	result, err := p.Predict(context.Background(), limits, window)
	require.NoError(t, err)

	// Threshold bumps alone sum to 85 before the anomaly base term.
	assert.GreaterOrEqual(t, result.FaultProbability, 85.0)
	assert.Equal(t, types.AlertRed, result.AlertLevel)
	assert.Equal(t, types.WindowImmediate, result.FailureWindow)
	assert.Contains(t, result.RiskFactors, "High temperature detected")
	assert.Contains(t, result.RiskFactors, "Excessive vibration")
	assert.Contains(t, result.Recommendations, "Schedule immediate maintenance inspection")
}

func TestPredictor_OutOfRangeTelemetryClampsNotErrors(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 12}
	window := flatWindow(10, types.SensorReading{
		MachineID:   "m3",
		Temperature: 100000,
		Vibration:   5000,
		Load:        400,
	})

	p := NewPredictor()
	result, err := p.Predict(context.Background(), limits, window)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.FaultProbability, 100.0)
	assert.GreaterOrEqual(t, result.HealthScore, 0.0)
}

func TestPredictor_Deterministic(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 12}
	window := flatWindow(10, types.SensorReading{MachineID: "m4", Temperature: 60, Vibration: 4, Load: 70})
	for i := range window {
		window[i].Temperature += float64(i)
	}

	a, err := NewPredictor().Predict(context.Background(), limits, window)
	require.NoError(t, err)
	b, err := NewPredictor().Predict(context.Background(), limits, window)
	require.NoError(t, err)

	assert.Equal(t, a.FaultProbability, b.FaultProbability)
	assert.Equal(t, a.AnomalyScore, b.AnomalyScore)
	assert.Equal(t, a.HealthScore, b.HealthScore)
}
