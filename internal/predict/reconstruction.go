package predict

import "math"

// ReconstructionScore is a statistical-distance proxy for an autoencoder:
// each reading's standardized Euclidean distance from the window mean,
// normalized to [0,100] by the window's own maximum distance, averaged.
// It is stateless; every call computes against the window's own statistics.
func ReconstructionScore(features [][]float64) float64 {
	means := make([]float64, numChannels)
	stds := make([]float64, numChannels)
	n := float64(len(features))

	for _, row := range features {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range features {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
	}

	errs := make([]float64, len(features))
	var maxErr float64
	for i, row := range features {
		var sum float64
		for j, v := range row {
			d := (v - means[j]) / (stds[j] + scaleEpsilon)
			sum += d * d
		}
		errs[i] = math.Sqrt(sum)
		if errs[i] > maxErr {
			maxErr = errs[i]
		}
	}

	if maxErr == 0 {
		return 0
	}
	var sum float64
	for _, e := range errs {
		sum += e / maxErr * 100
	}
	return sum / float64(len(errs))
}
