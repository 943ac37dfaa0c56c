package stretch

import (
	"stretchwarp/affinetransform"
	"stretchwarp/vmath/vec3"
)

// Transform returns the warped position of p.  Each anchor's local transform
// is applied to p's offset from that anchor's origin, and the resulting
// displacements are blended by closeness of p to the origins.
//
// An origin maps exactly onto its target.  With no anchors, p is returned
// unchanged.
func (s *AnchorSet) Transform(p vec3.T) vec3.T {
	if !s.upToDate {
		s.UpdateAnchorMatrices()
	}
	s.unrecordedWarps++
	return s.warp(p, positions(s.anchors, RoleOrigin))
}

// warp reads the anchors without modifying them.  The set must be clean.
func (s *AnchorSet) warp(p vec3.T, origins []vec3.T) vec3.T {
	weights := Weights(p, origins, NoExclusion, s.weightingExponent2)

	offsetSum := vec3.T{}
	for i := range s.anchors {
		delta := vec3.SubVV(p, origins[i])

		// The translation part applies even though delta is a difference
		// vector; that is what carries each origin onto its target.
		moved := affinetransform.TransformPoint(s.anchors[i].localTransform, delta)

		offset := vec3.MulVS(vec3.SubVV(moved, delta), weights[i])
		offsetSum = vec3.AddVV(offsetSum, offset)
	}

	return vec3.AddVV(p, offsetSum)
}
