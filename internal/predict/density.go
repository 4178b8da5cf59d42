package predict

import (
	"math/rand/v2"
	"sync"
)

// DensityScorer scores feature windows against a partition-based density
// model. The model and its scaling transform are fit exactly once per
// process lifetime, on the first window observed; every later window is
// scored against that fixed model. Concurrent first calls are serialized
// by the mutex so the fit happens exactly once.
type DensityScorer struct {
	mu     sync.Mutex
	fitted bool
	scaler *standardScaler
	forest *isoForest
}

// NewDensityScorer returns an unfitted DensityScorer.
func NewDensityScorer() *DensityScorer {
	return &DensityScorer{}
}

// Score returns the window's anomaly score in [0,100]; higher means more
// anomalous. Per-reading raw densities are min-max normalized across the
// window, averaged, and inverted (low density means high anomaly).
func (d *DensityScorer) Score(features [][]float64) float64 {
	scaler, forest := d.fit(features)

	scaled := scaler.transform(features)
	raw := make([]float64, len(scaled))
	for i, row := range scaled {
		raw[i] = forest.pathLength(row)
	}

	lo, hi := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	// Degenerate window (all rows identical): every normalized score is
	// zero and the window reports no anomaly.
	if hi == lo {
		return 0
	}

	var sum float64
	for _, v := range raw {
		sum += (v - lo) / (hi - lo) * 100
	}
	return 100 - sum/float64(len(raw))
}

// fit lazily fits the scaler and forest on the first window and returns
// the process-lifetime model.
func (d *DensityScorer) fit(features [][]float64) (*standardScaler, *isoForest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.fitted {
		d.scaler = fitScaler(features)
		rng := rand.New(rand.NewPCG(forestSeed, 0))
		d.forest = fitForest(d.scaler.transform(features), rng)
		d.fitted = true
	}
	return d.scaler, d.forest
}
