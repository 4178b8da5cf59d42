package predict

import "github.com/plantpulse/plantpulse/pkg/types"

// neutralHealth is returned when no channel can be evaluated at all.
const neutralHealth = 70

// HealthScore evaluates the latest reading against machine limits using
// independent piecewise-linear degradation curves per channel and returns
// the mean of the evaluated channels. A channel without a configured
// limit is skipped, not penalized.
func HealthScore(limits types.MachineLimits, latest types.SensorReading) float64 {
	var scores []float64

	if limits.MaxTemperature > 0 {
		scores = append(scores, ratioHealth(latest.Temperature/limits.MaxTemperature))
	}
	if limits.MaxVibration > 0 {
		scores = append(scores, ratioHealth(latest.Vibration/limits.MaxVibration))
	}
	scores = append(scores, loadHealth(latest.Load))
	if limits.MaxRPM > 0 {
		scores = append(scores, rpmHealth(latest.RPM/limits.MaxRPM))
	}
	scores = append(scores, acousticHealth(latest.AcousticNoise))

	if len(scores) == 0 {
		return neutralHealth
	}
	return mean(scores)
}

// ratioHealth is the shared degradation curve for channels scored as a
// ratio of the reading to its limit (temperature, vibration): full marks
// up to 70% of the limit, then two linear bands down to 60 at the limit,
// then a steeper decay floored at zero.
func ratioHealth(ratio float64) float64 {
	switch {
	case ratio <= 0.70:
		return 100
	case ratio <= 0.85:
		return 100 - (ratio-0.70)/0.15*20
	case ratio <= 1.0:
		return 80 - (ratio-0.85)/0.15*20
	default:
		return clamp(60-(ratio-1.0)*200, 0, 100)
	}
}

func loadHealth(load float64) float64 {
	switch {
	case load > 100:
		return clamp(100-(load-100)*2, 0, 100)
	case load > 90:
		return 100 - (load-90)*2
	default:
		return 100
	}
}

// rpmHealth scores operating speed: the sweet spot is 80-100% of max RPM;
// below that the score degrades with distance from the 70% midpoint.
func rpmHealth(ratio float64) float64 {
	switch {
	case ratio >= 0.80 && ratio <= 1.0:
		return 100
	case ratio >= 0.60 && ratio < 0.80:
		return 80 + (ratio-0.60)*100
	default:
		d := ratio - 0.70
		if d < 0 {
			d = -d
		}
		return clamp(60-d*200, 0, 100)
	}
}

func acousticHealth(noise float64) float64 {
	if noise > 85 {
		return clamp(100-(noise-85)*5, 0, 100)
	}
	return 100
}
