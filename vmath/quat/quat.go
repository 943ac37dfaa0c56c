// Package quat provides unit quaternions as rotations of 3-space, built on the
// gonum quaternion number type.
package quat

import (
	"math"

	gquat "gonum.org/v1/gonum/num/quat"

	"stretchwarp/vmath/mat33"
	"stretchwarp/vmath/vec3"
)

// T is a quaternion.  Real is the scalar part; Imag, Jmag and Kmag are the
// x, y and z components of the vector part.
type T gquat.Number

// Threshold under which two unit vectors are treated as parallel or
// antiparallel, and two quaternions as close enough to lerp.
const epsilon = 0.000001

func Identity() T {
	return T{Real: 1}
}

func FromAxisAngle(axis vec3.T, angle float64) T {
	s := math.Sin(angle / 2)
	return T{
		Real: math.Cos(angle / 2),
		Imag: axis[0] * s,
		Jmag: axis[1] * s,
		Kmag: axis[2] * s,
	}
}

func (q T) Norm() float64 {
	return gquat.Abs(gquat.Number(q))
}

// Normalize returns q scaled to unit norm.  A zero or non-finite q yields the
// identity rotation.
func Normalize(q T) T {
	n := q.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Identity()
	}
	return T(gquat.Scale(1/n, gquat.Number(q)))
}

func Dot(a, b T) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// RotationTo returns the shortest-arc rotation taking unit vector a onto unit
// vector b.  If either vector is zero the result is the identity.  For
// antiparallel vectors the rotation is half a turn about an axis
// perpendicular to a.
func RotationTo(a, b vec3.T) T {
	dot := vec3.IProd(a, b)
	switch {
	case dot < -1+epsilon:
		axis := vec3.CProd(vec3.T{1, 0, 0}, a)
		if axis.Norm() < epsilon {
			axis = vec3.CProd(vec3.T{0, 1, 0}, a)
		}
		return FromAxisAngle(vec3.Normalize(axis), math.Pi)
	case dot > 1-epsilon:
		return Identity()
	}

	axis := vec3.CProd(a, b)
	return Normalize(T{
		Real: 1 + dot,
		Imag: axis[0],
		Jmag: axis[1],
		Kmag: axis[2],
	})
}

// Slerp interpolates from a (t=0) to b (t=1) along the shorter great arc.
func Slerp(a, b T, t float64) T {
	cosom := Dot(a, b)
	if cosom < 0 {
		cosom = -cosom
		b = T(gquat.Scale(-1, gquat.Number(b)))
	}

	scale0, scale1 := 1-t, t
	if 1-cosom > epsilon {
		omega := math.Acos(cosom)
		sinom := math.Sin(omega)
		scale0 = math.Sin((1-t)*omega) / sinom
		scale1 = math.Sin(t*omega) / sinom
	}

	return T(gquat.Add(
		gquat.Scale(scale0, gquat.Number(a)),
		gquat.Scale(scale1, gquat.Number(b)),
	))
}

// Mat33 returns the rotation matrix of the unit quaternion q.
func Mat33(q T) mat33.T {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	x2, y2, z2 := x+x, y+y, z+z

	xx, yx, yy := x*x2, y*x2, y*y2
	zx, zy, zz := z*x2, z*y2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return mat33.T{
		1 - yy - zz, yx - wz, zx + wy,
		yx + wz, 1 - xx - zz, zy - wx,
		zx - wy, zy + wx, 1 - xx - yy,
	}
}
