// Package predict implements the machine fault-prediction pipeline:
// anomaly scoring, rule-based health scoring, fault probability fusion,
// and alert classification.
package predict

import (
	"errors"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// MinWindow is the minimum number of readings required for a prediction.
const MinWindow = 10

// Feature channel order within the matrix.
const (
	chanVibration = iota
	chanTemperature
	chanAcoustic
	chanLoad
	chanRPM
	numChannels
)

// ErrInsufficientData is returned when a window has fewer than MinWindow
// readings. It is caller-fatal; the engine never retries internally.
var ErrInsufficientData = errors.New("insufficient sensor data: need at least 10 readings")

// featureMatrix converts a chronologically ordered window of readings into
// an n×5 matrix (rows = readings, columns = channels).
func featureMatrix(window []types.SensorReading) [][]float64 {
	m := make([][]float64, len(window))
	for i, r := range window {
		m[i] = []float64{r.Vibration, r.Temperature, r.AcousticNoise, r.Load, r.RPM}
	}
	return m
}

// validateWindow fails fast on windows that are too short to score.
func validateWindow(window []types.SensorReading) error {
	if len(window) < MinWindow {
		return ErrInsufficientData
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
