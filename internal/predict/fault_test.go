package predict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// flatWindow builds n identical readings.
func flatWindow(n int, r types.SensorReading) []types.SensorReading {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	window := make([]types.SensorReading, n)
	for i := range window {
		r.Timestamp = base.Add(time.Duration(i) * time.Minute)
		window[i] = r
	}
	return window
}

func TestFaultProbability_NoBumpsOnNominalWindow(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 10}
	window := flatWindow(10, types.SensorReading{
		Temperature: 50, Vibration: 3, Load: 50, AcousticNoise: 60, RPM: 4000,
	})
	assert.InDelta(t, 15, FaultProbability(20, 10, limits, window), 1e-9)
}

func TestFaultProbability_ThresholdBumps(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 10}

	tests := []struct {
		name    string
		latest  types.SensorReading
		want    float64
	}{
		{
			"temperature above 90% of limit",
			types.SensorReading{Temperature: 95, Vibration: 3, Load: 50},
			bumpTemperature,
		},
		{
			"vibration above 90% of limit",
			types.SensorReading{Temperature: 50, Vibration: 9.5, Load: 50},
			bumpVibration,
		},
		{
			"load above 95",
			types.SensorReading{Temperature: 50, Vibration: 3, Load: 96},
			bumpLoad,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := flatWindow(10, tt.latest)
			assert.InDelta(t, tt.want, FaultProbability(0, 0, limits, window), 1e-9)
		})
	}
}

func TestFaultProbability_TrendBumps(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 200, MaxVibration: 100}
	window := flatWindow(10, types.SensorReading{
		Temperature: 50, Vibration: 3, Load: 50,
	})
	// Ramp the final five readings: temperature +20%, vibration +50%.
	for i := 5; i < 10; i++ {
		window[i].Temperature = 50 + float64(i-5)*2.5
		window[i].Vibration = 3 + float64(i-5)*0.4
	}
	got := FaultProbability(0, 0, limits, window)
	assert.InDelta(t, bumpTempTrend+bumpVibTrend, got, 1e-9)
}

func TestFaultProbability_MonotoneInTemperature(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 10}

	prev := -1.0
	for temp := 0.0; temp <= 130; temp += 1 {
		window := flatWindow(10, types.SensorReading{
			Temperature: 50, Vibration: 3, Load: 50,
		})
		window[9].Temperature = temp
		got := FaultProbability(20, 10, limits, window)
		assert.GreaterOrEqual(t, got, prev, "temperature=%v", temp)
		prev = got
	}
}

func TestFaultProbability_MonotoneInVibration(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 10}

	prev := -1.0
	for vib := 0.0; vib <= 13; vib += 0.1 {
		window := flatWindow(10, types.SensorReading{
			Temperature: 50, Vibration: 3, Load: 50,
		})
		window[9].Vibration = vib
		got := FaultProbability(20, 10, limits, window)
		assert.GreaterOrEqual(t, got, prev, "vibration=%v", vib)
		prev = got
	}
}

func TestFaultProbability_ClampsAt100(t *testing.T) {
	limits := types.MachineLimits{MaxTemperature: 100, MaxVibration: 10}
	window := flatWindow(10, types.SensorReading{
		Temperature: 99, Vibration: 9.9, Load: 99,
	})
	got := FaultProbability(90, 90, limits, window)
	assert.InDelta(t, 100, got, 1e-9)
}

func TestFaultProbability_SkipsChecksWithoutLimits(t *testing.T) {
	window := flatWindow(10, types.SensorReading{
		Temperature: 500, Vibration: 80, Load: 50,
	})
	got := FaultProbability(0, 0, types.MachineLimits{}, window)
	assert.InDelta(t, 0, got, 1e-9)
}

func TestTemperatureRising_ShortWindowSkipsCheck(t *testing.T) {
	window := flatWindow(4, types.SensorReading{Temperature: 50})
	window[3].Temperature = 100
	assert.False(t, temperatureRising(window, 0.10))
}
