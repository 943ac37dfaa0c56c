package quat

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stretchwarp/vmath/vec3"
)

func zRot(angle float64) T {
	return FromAxisAngle(vec3.T{0, 0, 1}, angle)
}

func TestWeightedAverageZeroTotalReturnsFirst(t *testing.T) {
	rotations := []T{zRot(0.5), zRot(1), zRot(2)}
	got := WeightedAverage(rotations, []float64{0, 0, 0})
	if got != rotations[0] {
		t.Errorf("Zero total weight; got %v, want %v", got, rotations[0])
	}
}

func TestWeightedAverageSingleHeavyEntry(t *testing.T) {
	rotations := []T{Identity(), zRot(0.5), zRot(1), zRot(2)}
	got := WeightedAverage(rotations, []float64{0, 0, 0, 1})
	if diff := cmp.Diff(got, rotations[3], approx); diff != "" {
		t.Errorf("All weight on last entry; diff (-got +want)\n%s", diff)
	}

	got = WeightedAverage(rotations, []float64{0, 1, 0, 0})
	if diff := cmp.Diff(got, rotations[1], approx); diff != "" {
		t.Errorf("All weight on second entry; diff (-got +want)\n%s", diff)
	}
}

func TestWeightedAverageEqualWeights(t *testing.T) {
	got := WeightedAverage([]T{zRot(0), zRot(1)}, []float64{0.5, 0.5})
	if diff := cmp.Diff(got, zRot(0.5), approx); diff != "" {
		t.Errorf("Two equal weights; diff (-got +want)\n%s", diff)
	}

	// Three coaxial rotations with equal weight land on the mean angle.
	got = WeightedAverage([]T{zRot(0), zRot(0.3), zRot(0.9)}, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	if diff := cmp.Diff(got, zRot(0.4), approx); diff != "" {
		t.Errorf("Three equal weights; diff (-got +want)\n%s", diff)
	}
}

func TestWeightedAverageIsUnit(t *testing.T) {
	rotations := []T{
		Identity(),
		RotationTo(vec3.T{1, 0, 0}, vec3.Normalize(vec3.T{1, 1, 0})),
		RotationTo(vec3.T{0, 1, 0}, vec3.Normalize(vec3.T{0, 1, 1})),
		RotationTo(vec3.T{1, 0, 0}, vec3.T{-1, 0, 0}),
		RotationTo(vec3.Normalize(vec3.T{1, 2, 3}), vec3.Normalize(vec3.T{3, -2, 1})),
	}
	weightSets := [][]float64{
		{0, 0.25, 0.25, 0.25, 0.25},
		{0.1, 0.2, 0.3, 0.2, 0.2},
		{0, 0, 0.5, 0, 0.5},
		{1e-12, 0, 0, 0, 1 - 1e-12},
	}

	for _, weights := range weightSets {
		got := WeightedAverage(rotations, weights)
		if n := got.Norm(); math.Abs(n-1) > 1e-12 {
			t.Errorf("Average with weights %v has norm %v, want 1", weights, n)
		}
	}
}

func TestWeightedAverageOrderDependent(t *testing.T) {
	a := RotationTo(vec3.T{1, 0, 0}, vec3.T{0, 1, 0})
	b := RotationTo(vec3.T{0, 1, 0}, vec3.T{0, 0, 1})
	c := RotationTo(vec3.T{0, 0, 1}, vec3.T{1, 0, 0})
	weights := []float64{0.2, 0.3, 0.5}

	forward := WeightedAverage([]T{a, b, c}, weights)
	reordered := WeightedAverage([]T{c, b, a}, []float64{0.5, 0.3, 0.2})

	if math.Abs(Dot(forward, reordered)) > 1-1e-9 {
		t.Errorf("Expected reordering to change the sequential average; got %v and %v", forward, reordered)
	}
}

func TestWeightedAveragePanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for mismatched lengths")
		}
	}()
	WeightedAverage([]T{Identity()}, []float64{0.5, 0.5})
}
