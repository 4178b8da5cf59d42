package predict

import "github.com/plantpulse/plantpulse/pkg/types"

// Threshold-crossing bumps applied on top of the anomaly base term. The
// bumps are additive and clamped last so that multiple simultaneous risk
// factors compound instead of averaging away.
const (
	bumpTemperature = 20 // latest temperature above 90% of limit
	bumpVibration   = 25 // latest vibration above 90% of limit
	bumpLoad        = 15 // latest load above 95%
	bumpTempTrend   = 10 // temperature rising >10% over the last 5 readings
	bumpVibTrend    = 15 // vibration rising >15% over the last 5 readings

	trendSpan = 5
)

// FaultProbability fuses the density and reconstruction scores with
// threshold-crossing and short-horizon trend bumps into a 0-100 fault
// probability.
func FaultProbability(anomalyScore, reconstructionScore float64, limits types.MachineLimits, window []types.SensorReading) float64 {
	latest := window[len(window)-1]
	prob := (anomalyScore + reconstructionScore) / 2

	if limits.MaxTemperature > 0 && latest.Temperature > limits.MaxTemperature*0.9 {
		prob += bumpTemperature
	}
	if limits.MaxVibration > 0 && latest.Vibration > limits.MaxVibration*0.9 {
		prob += bumpVibration
	}
	if latest.Load > 95 {
		prob += bumpLoad
	}

	if temperatureRising(window, 0.10) {
		prob += bumpTempTrend
	}
	if vibrationRising(window, 0.15) {
		prob += bumpVibTrend
	}

	return clamp(prob, 0, 100)
}

// temperatureRising reports whether temperature rose by more than the
// given fraction between the first and last of the final trendSpan
// readings. Windows shorter than trendSpan skip the check.
func temperatureRising(window []types.SensorReading, fraction float64) bool {
	if len(window) < trendSpan {
		return false
	}
	recent := window[len(window)-trendSpan:]
	return recent[trendSpan-1].Temperature > recent[0].Temperature*(1+fraction)
}

func vibrationRising(window []types.SensorReading, fraction float64) bool {
	if len(window) < trendSpan {
		return false
	}
	recent := window[len(window)-trendSpan:]
	return recent[trendSpan-1].Vibration > recent[0].Vibration*(1+fraction)
}
