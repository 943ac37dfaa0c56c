// Package stretch warps space through a sparse set of anchors.  Each anchor
// pins an origin position to a target position; every other point is moved
// by a distance-weighted blend of the rigid-plus-uniform-scale transforms the
// anchors imply.
//
// An AnchorSet has no internal locking.  Callers that share one between
// goroutines must serialize mutation and Transform themselves.
package stretch

import (
	"github.com/google/uuid"

	"stretchwarp/affinetransform"
	"stretchwarp/vmath/vec3"
)

// Handle identifies an anchor independently of its position in the set.
// Removing other anchors shifts indices but never invalidates a Handle.
type Handle struct {
	id uuid.UUID
}

func (h Handle) String() string {
	return h.id.String()
}

// Anchor is a snapshot of one origin/target pair and its cached local
// transform.
type Anchor struct {
	handle Handle
	origin vec3.T
	target vec3.T

	localTransform affinetransform.AffineTransform
}

func (a Anchor) Handle() Handle {
	return a.handle
}

func (a Anchor) Origin() vec3.T {
	return a.origin
}

func (a Anchor) Target() vec3.T {
	return a.target
}

// LocalTransform is only meaningful when taken from a clean set; see
// AnchorSet.UpdateAnchorMatrices.
func (a Anchor) LocalTransform() affinetransform.AffineTransform {
	return a.localTransform
}

// Role selects which position of an anchor a query looks at.
type Role int

const (
	RoleOrigin Role = iota
	RoleTarget
	RoleEither
)

func (r Role) String() string {
	switch r {
	case RoleOrigin:
		return "origin"
	case RoleTarget:
		return "target"
	case RoleEither:
		return "either"
	}
	return "unknown"
}

// positions returns the selected position of every anchor.  RoleEither is not
// a valid selector here.
func positions(anchors []Anchor, r Role) []vec3.T {
	out := make([]vec3.T, len(anchors))
	for i := range anchors {
		if r == RoleTarget {
			out[i] = anchors[i].target
		} else {
			out[i] = anchors[i].origin
		}
	}
	return out
}
