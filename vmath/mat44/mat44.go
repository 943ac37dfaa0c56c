// Package mat44 holds row-major 4x4 homogeneous matrices, the form in which
// hosts usually upload transforms.
package mat44

type T [16]float64
