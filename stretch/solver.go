package stretch

import (
	"math"

	"github.com/golang/glog"

	"stretchwarp/affinetransform"
	"stretchwarp/vmath/quat"
	"stretchwarp/vmath/vec3"
)

// zeroOriginScaleFallback is the scale ratio used for a pair of anchors whose
// origins coincide but whose targets do not.  The value is arbitrary and kept
// for compatibility with existing rigs.
const zeroOriginScaleFallback = 10.0

// UpdateAnchorMatrices recomputes every anchor's local transform and marks
// the set clean.  Transform calls it as needed; calling it directly is only
// useful to move the cost out of the first Transform, or before sharing a
// clean set with concurrent readers.
func (s *AnchorSet) UpdateAnchorMatrices() {
	targets := positions(s.anchors, RoleTarget)
	for i := range s.anchors {
		s.anchors[i].localTransform = s.localTransform(i, targets)
	}
	s.upToDate = true

	recordRecompute(len(s.anchors))
	s.FlushMetrics()
	glog.V(2).Infof("Recomputed local transforms for %d anchors", len(s.anchors))
}

// localTransform synthesizes anchor i's translation, rotation and uniform
// scale.  Rotation and scale are blended from the pairwise changes between
// anchor i and every other anchor, weighted by closeness of their targets.
func (s *AnchorSet) localTransform(i int, targets []vec3.T) affinetransform.AffineTransform {
	self := &s.anchors[i]
	translation := vec3.SubVV(self.target, self.origin)

	weights := Weights(self.target, targets, i, s.weightingExponent1)

	rotations := make([]quat.T, len(s.anchors))
	scale := 1.0
	for j := range s.anchors {
		if j == i {
			// Weight 0 by exclusion, so this never moves the average.
			rotations[j] = quat.Identity()
			continue
		}
		other := &s.anchors[j]

		dirOrigin := vec3.Normalize(vec3.SubVV(other.origin, self.origin))
		dirTarget := vec3.Normalize(vec3.SubVV(other.target, self.target))
		rotations[j] = quat.RotationTo(dirOrigin, dirTarget)

		scale *= math.Pow(scaleRatio(self, other), weights[j])
	}

	rotation := quat.WeightedAverage(rotations, weights)

	return affinetransform.Similarity(translation, rotation, scale)
}

// scaleRatio is how much the distance between a and b grew from origins to
// targets.
func scaleRatio(a, b *Anchor) float64 {
	distOrigin := vec3.Dist(b.origin, a.origin)
	distTarget := vec3.Dist(b.target, a.target)

	switch {
	case distOrigin == 0 && distTarget == 0:
		return 1
	case distOrigin == 0:
		// Arbitrary; see zeroOriginScaleFallback.
		return zeroOriginScaleFallback
	}
	return distTarget / distOrigin
}
