package predict

import "github.com/plantpulse/plantpulse/pkg/types"

// RiskFactors returns the ordered list of human-readable risk factors for
// the window, using the same thresholds as the fault probability bumps
// plus an absolute acoustic-noise check. When nothing triggers it returns
// a single nominal statement, never an empty list.
func RiskFactors(limits types.MachineLimits, window []types.SensorReading) []string {
	latest := window[len(window)-1]
	var risks []string

	if limits.MaxTemperature > 0 && latest.Temperature > limits.MaxTemperature*0.9 {
		risks = append(risks, "High temperature detected")
	}
	if limits.MaxVibration > 0 && latest.Vibration > limits.MaxVibration*0.9 {
		risks = append(risks, "Excessive vibration")
	}
	if latest.Load > 95 {
		risks = append(risks, "Overload condition")
	}
	if latest.AcousticNoise > 90 {
		risks = append(risks, "Abnormal acoustic noise")
	}
	if temperatureRising(window, 0.10) {
		risks = append(risks, "Rising temperature trend")
	}
	if vibrationRising(window, 0.15) {
		risks = append(risks, "Increasing vibration trend")
	}

	if len(risks) == 0 {
		risks = append(risks, "All parameters within normal range")
	}
	return risks
}

// Recommendations returns the ordered list of maintenance actions keyed
// off the fault probability and health score bands plus specific channel
// thresholds. At least one recommendation is always produced.
func Recommendations(faultProbability, healthScore float64, latest types.SensorReading) []string {
	var recs []string

	if faultProbability > 70 {
		recs = append(recs,
			"Schedule immediate maintenance inspection",
			"Consider reducing machine load",
			"Monitor machine continuously",
		)
	} else if faultProbability > 40 {
		recs = append(recs,
			"Schedule preventive maintenance within 7 days",
			"Increase monitoring frequency",
		)
	}

	if healthScore < 60 {
		recs = append(recs,
			"Perform detailed health assessment",
			"Review maintenance history",
		)
	}

	if latest.Temperature > 80 {
		recs = append(recs, "Check cooling systems and ventilation")
	}
	if latest.Vibration > 5 {
		recs = append(recs, "Inspect bearings and alignment")
	}

	if len(recs) == 0 {
		recs = append(recs,
			"Continue regular monitoring",
			"Maintain current maintenance schedule",
		)
	}
	return recs
}
