// Package vec3 is the point and direction type shared by the warp code.
package vec3

import (
	"math"

	"golang.org/x/xerrors"
)

// ErrInvalidCoordinate is returned when a caller-supplied coordinate cannot be
// turned into a point.
var ErrInvalidCoordinate = xerrors.New("invalid coordinate")

type T [3]float64

// FromSlice copies a 2- or 3-component coordinate into a T.  A missing third
// component is 0.  Any other arity, or a non-finite component, is rejected.
func FromSlice(c []float64) (T, error) {
	if len(c) != 2 && len(c) != 3 {
		return T{}, xerrors.Errorf("got %d components, want 2 or 3: %w", len(c), ErrInvalidCoordinate)
	}

	v := T{}
	copy(v[:], c)
	if !v.IsFinite() {
		return T{}, xerrors.Errorf("component of %v is not finite: %w", c, ErrInvalidCoordinate)
	}
	return v, nil
}

// Slice returns a fresh 3-element slice holding v.
func (v T) Slice() []float64 {
	return []float64{v[0], v[1], v[2]}
}

func (v T) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v scaled to unit length.  The zero vector stays zero.
func Normalize(v T) T {
	l := v.Norm()
	if l == 0 {
		return T{}
	}
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
	}
}

func AddVV(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

func SubVV(a, b T) T {
	return T{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
	}
}

func MulVS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
	}
}

func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func CProd(a, b T) T {
	return T{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Dist is the Euclidean distance between a and b.
func Dist(a, b T) float64 {
	return SubVV(a, b).Norm()
}
