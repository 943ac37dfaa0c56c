package stretch

import (
	"math"

	"stretchwarp/vmath/vec3"
)

// NoExclusion passed as the exclude index to Weights lets every position take
// part.
const NoExclusion = -1

// Weights returns an inverse-distance-power weight for each of positions as
// seen from ref.  The weights are non-negative and sum to 1, except that an
// empty input gives an empty result and a set with nothing left to weigh gives
// all zeros.
//
// Position exclude (if in range) always gets weight 0.  If the nearest
// remaining position coincides with ref, it takes weight 1 and everything
// else 0; on ties for nearest, the lowest index wins.  A raw weight that
// overflows to +Inf is treated the same way: the lowest such index takes
// weight 1.
func Weights(ref vec3.T, positions []vec3.T, exclude int, exponent float64) []float64 {
	n := len(positions)
	weights := make([]float64, n)
	if n == 0 {
		return weights
	}

	dists := make([]float64, n)
	nearest := -1
	minDist := math.MaxFloat64
	for i, p := range positions {
		dists[i] = vec3.Dist(ref, p)
		if i != exclude && dists[i] < minDist {
			minDist = dists[i]
			nearest = i
		}
	}

	if nearest != -1 && minDist == 0 {
		weights[nearest] = 1
		return weights
	}

	sum := 0.0
	for i := range positions {
		if i == exclude {
			continue
		}
		weights[i] = 1 / math.Pow(dists[i], exponent)
		sum += weights[i]
	}

	switch {
	case math.IsInf(sum, 1):
		// Some raw weight overflowed; the first such position dominates.
		// With a negative exponent that is a far position, not the nearest.
		dominant := -1
		for i := range weights {
			if dominant == -1 && math.IsInf(weights[i], 1) {
				dominant = i
			}
			weights[i] = 0
		}
		if dominant != -1 {
			weights[dominant] = 1
		}
	case sum == 0 || math.IsNaN(sum):
		for i := range weights {
			weights[i] = 0
		}
	default:
		for i := range weights {
			weights[i] /= sum
		}
	}
	return weights
}
