// Package affinetransform represents affine maps of 3-space as a linear part
// plus an offset.
package affinetransform

import (
	"stretchwarp/vmath/mat33"
	"stretchwarp/vmath/mat44"
	"stretchwarp/vmath/quat"
	"stretchwarp/vmath/vec3"
)

type AffineTransform struct {
	Linear mat33.T
	Offset vec3.T
}

func Identity() AffineTransform {
	return AffineTransform{
		Linear: mat33.Identity(),
		Offset: vec3.T{0.0, 0.0, 0.0},
	}
}

// Scale is a uniform scale about the origin.
func Scale(s float64) AffineTransform {
	return AffineTransform{
		Linear: mat33.T{s, 0.0, 0.0, 0.0, s, 0.0, 0.0, 0.0, s},
		Offset: vec3.T{0.0, 0.0, 0.0},
	}
}

func Translate(x vec3.T) AffineTransform {
	result := Identity()
	result.Offset = x
	return result
}

// Rotate is the rotation about the origin given by the unit quaternion q.
func Rotate(q quat.T) AffineTransform {
	return AffineTransform{
		Linear: quat.Mat33(q),
		Offset: vec3.T{0.0, 0.0, 0.0},
	}
}

// Compose returns the transform that applies b, then a.
func Compose(a, b AffineTransform) AffineTransform {
	return AffineTransform{
		Linear: mat33.MulMM(a.Linear, b.Linear),
		Offset: vec3.AddVV(a.Offset, mat33.MulMV(a.Linear, b.Offset)),
	}
}

// Similarity is Translate(t) ∘ Rotate(q) ∘ Scale(s): the vector is scaled
// first and translated last.
func Similarity(t vec3.T, q quat.T, s float64) AffineTransform {
	return Compose(Translate(t), Compose(Rotate(q), Scale(s)))
}

// Mat44 returns t as a row-major homogeneous matrix.
func (t AffineTransform) Mat44() mat44.T {
	return mat44.T{
		t.Linear[0], t.Linear[1], t.Linear[2], t.Offset[0],
		t.Linear[3], t.Linear[4], t.Linear[5], t.Offset[1],
		t.Linear[6], t.Linear[7], t.Linear[8], t.Offset[2],
		0, 0, 0, 1,
	}
}

// TransformPoint applies a to b as a point, so the offset is included.
func TransformPoint(a AffineTransform, b vec3.T) vec3.T {
	return vec3.AddVV(mat33.MulMV(a.Linear, b), a.Offset)
}
