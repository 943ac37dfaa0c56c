package quat

import "fmt"

// WeightedAverage blends rotations by weights with a running slerp: the
// accumulator starts at rotations[0] and, for each later index i, moves
// toward rotations[i] by the share weights[i] has of the weight seen so far.
//
// This only approximates a weighted spherical mean.  The result depends on
// input order.
//
// If the total weight is 0, rotations[0] is returned unchanged.  Steps whose
// running weight is still 0 leave the accumulator in place.  Otherwise the
// result has unit norm.
//
// WeightedAverage panics if the slices are empty or differ in length.
func WeightedAverage(rotations []T, weights []float64) T {
	if len(rotations) == 0 || len(rotations) != len(weights) {
		panic(fmt.Sprintf("quat: WeightedAverage needs equal non-zero lengths, got %d rotations and %d weights", len(rotations), len(weights)))
	}

	sums := make([]float64, len(weights))
	sums[0] = weights[0]
	for i := 1; i < len(weights); i++ {
		sums[i] = sums[i-1] + weights[i]
	}

	if sums[len(sums)-1] == 0 {
		return rotations[0]
	}

	acc := rotations[0]
	for i := 1; i < len(rotations); i++ {
		if sums[i] == 0 {
			continue
		}
		acc = Slerp(acc, rotations[i], weights[i]/sums[i])
	}
	return Normalize(acc)
}
