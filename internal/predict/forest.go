package predict

import (
	"math"
	"math/rand/v2"
)

// Isolation forest parameters. The fixed seed makes the one-time fit
// reproducible across processes, matching the fixed random state the
// scoring contract requires.
const (
	forestTrees = 100
	forestSeed  = 42
)

const scaleEpsilon = 1e-8

// standardScaler normalizes each feature column to zero mean and unit
// variance using statistics captured at fit time.
type standardScaler struct {
	mean []float64
	std  []float64
}

func fitScaler(m [][]float64) *standardScaler {
	s := &standardScaler{
		mean: make([]float64, numChannels),
		std:  make([]float64, numChannels),
	}
	n := float64(len(m))
	for _, row := range m {
		for j, v := range row {
			s.mean[j] += v
		}
	}
	for j := range s.mean {
		s.mean[j] /= n
	}
	for _, row := range m {
		for j, v := range row {
			d := v - s.mean[j]
			s.std[j] += d * d
		}
	}
	for j := range s.std {
		s.std[j] = math.Sqrt(s.std[j] / n)
	}
	return s
}

func (s *standardScaler) transform(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.mean[j]) / (s.std[j] + scaleEpsilon)
		}
		out[i] = scaled
	}
	return out
}

// isoNode is a node in an isolation tree. Leaves record the number of
// samples that reached them.
type isoNode struct {
	feature int
	split   float64
	left    *isoNode
	right   *isoNode
	size    int
}

func (n *isoNode) isLeaf() bool { return n.left == nil }

// isoForest is a partition-based density model: anomalous points isolate
// in fewer random splits, so shorter average path length means lower
// density.
type isoForest struct {
	trees []*isoNode
}

func fitForest(samples [][]float64, rng *rand.Rand) *isoForest {
	maxDepth := int(math.Ceil(math.Log2(math.Max(2, float64(len(samples))))))
	f := &isoForest{trees: make([]*isoNode, forestTrees)}
	for i := range f.trees {
		f.trees[i] = buildTree(samples, 0, maxDepth, rng)
	}
	return f
}

func buildTree(samples [][]float64, depth, maxDepth int, rng *rand.Rand) *isoNode {
	if len(samples) <= 1 || depth >= maxDepth {
		return &isoNode{size: len(samples)}
	}

	// Pick a random feature with spread; give up after a few attempts on
	// degenerate data (all rows identical in the sampled features).
	for attempt := 0; attempt < numChannels; attempt++ {
		feature := rng.IntN(numChannels)
		lo, hi := columnRange(samples, feature)
		if hi <= lo {
			continue
		}
		split := lo + rng.Float64()*(hi-lo)

		var left, right [][]float64
		for _, s := range samples {
			if s[feature] < split {
				left = append(left, s)
			} else {
				right = append(right, s)
			}
		}
		return &isoNode{
			feature: feature,
			split:   split,
			left:    buildTree(left, depth+1, maxDepth, rng),
			right:   buildTree(right, depth+1, maxDepth, rng),
		}
	}
	return &isoNode{size: len(samples)}
}

func columnRange(samples [][]float64, feature int) (lo, hi float64) {
	lo, hi = samples[0][feature], samples[0][feature]
	for _, s := range samples[1:] {
		v := s[feature]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// pathLength returns the average isolation path length of x over all trees.
func (f *isoForest) pathLength(x []float64) float64 {
	var total float64
	for _, tree := range f.trees {
		depth := 0.0
		node := tree
		for !node.isLeaf() {
			if x[node.feature] < node.split {
				node = node.left
			} else {
				node = node.right
			}
			depth++
		}
		total += depth + avgUnsuccessfulSearch(node.size)
	}
	return total / float64(len(f.trees))
}

// avgUnsuccessfulSearch is c(n), the average BST unsuccessful-search path
// length used to credit leaves that still hold multiple samples.
func avgUnsuccessfulSearch(n int) float64 {
	if n <= 1 {
		return 0
	}
	nf := float64(n)
	const eulerGamma = 0.5772156649
	return 2*(math.Log(nf-1)+eulerGamma) - 2*(nf-1)/nf
}
