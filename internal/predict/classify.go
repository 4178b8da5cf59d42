package predict

import "github.com/plantpulse/plantpulse/pkg/types"

// FailureWindowFor maps a fault probability to its coarse time-to-failure
// bucket. Probabilities under 30 predict no failure.
func FailureWindowFor(faultProbability float64) types.FailureWindow {
	switch {
	case faultProbability < 30:
		return types.WindowNone
	case faultProbability < 50:
		return types.WindowTwoWeeks
	case faultProbability < 70:
		return types.WindowWeek
	case faultProbability < 85:
		return types.WindowTwoDays
	default:
		return types.WindowImmediate
	}
}

// AlertLevelFor classifies the prediction into the tri-level alert.
func AlertLevelFor(faultProbability, healthScore float64) types.AlertLevel {
	switch {
	case faultProbability > 70 || healthScore < 40:
		return types.AlertRed
	case faultProbability > 40 || healthScore < 70:
		return types.AlertYellow
	default:
		return types.AlertGreen
	}
}

// MachineStatusFor derives the machine operating status recorded on the
// snapshot after a prediction.
func MachineStatusFor(faultProbability, healthScore float64) types.MachineStatus {
	switch {
	case faultProbability > 70:
		return types.MachineCritical
	case faultProbability > 40 || healthScore < 60:
		return types.MachineWarning
	default:
		return types.MachineOperational
	}
}
