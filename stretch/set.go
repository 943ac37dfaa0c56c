package stretch

import (
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"stretchwarp/vmath/vec3"
)

const (
	DefaultWeightingExponent1 = 1.0
	DefaultWeightingExponent2 = 2.0
)

// AnchorSet is an ordered collection of anchors together with the two
// weighting exponents.  The zero value is not usable; call New.
type AnchorSet struct {
	anchors []Anchor

	// weightingExponent1 controls how strongly nearby anchors dominate when
	// one anchor's rotation and scale are synthesized from the others.
	weightingExponent1 float64
	// weightingExponent2 controls how strongly nearby anchors dominate when
	// an arbitrary point is warped.
	weightingExponent2 float64

	// upToDate is false whenever any anchor's local transform may be stale.
	upToDate bool

	// unrecordedWarps counts Transform calls not yet reported to the
	// warped points measure.
	unrecordedWarps int64
}

// New returns an empty set with the default exponents.
func New() *AnchorSet {
	return &AnchorSet{
		weightingExponent1: DefaultWeightingExponent1,
		weightingExponent2: DefaultWeightingExponent2,
	}
}

// AddAnchor appends an anchor that moves origin to target.
func (s *AnchorSet) AddAnchor(origin, target vec3.T) Handle {
	h := Handle{id: uuid.New()}
	s.anchors = append(s.anchors, Anchor{
		handle: h,
		origin: origin,
		target: target,
	})
	s.upToDate = false
	return h
}

// AddFixedAnchor appends an anchor whose origin and target are both p.
func (s *AnchorSet) AddFixedAnchor(p vec3.T) Handle {
	return s.AddAnchor(p, p)
}

// RemoveAnchor removes the anchor identified by h.  A handle from another set,
// or one already removed, fails with ErrInvalidAnchorReference.
func (s *AnchorSet) RemoveAnchor(h Handle) error {
	i, ok := s.IndexOf(h)
	if !ok {
		return xerrors.Errorf("while removing anchor %v: %w", h, ErrInvalidAnchorReference)
	}
	s.removeAt(i)
	return nil
}

// RemoveAnchorAt removes the anchor at index i, shifting later anchors down.
func (s *AnchorSet) RemoveAnchorAt(i int) error {
	if i < 0 || i >= len(s.anchors) {
		e := newIndexError(i, len(s.anchors))
		e.removal = true
		return xerrors.Errorf("while removing anchor: %w", e)
	}
	s.removeAt(i)
	return nil
}

func (s *AnchorSet) removeAt(i int) {
	s.anchors = append(s.anchors[:i], s.anchors[i+1:]...)
	s.upToDate = false
}

// IndexOf returns the current index of the anchor identified by h.
func (s *AnchorSet) IndexOf(h Handle) (int, bool) {
	for i := range s.anchors {
		if s.anchors[i].handle == h {
			return i, true
		}
	}
	return -1, false
}

func (s *AnchorSet) AnchorCount() int {
	return len(s.anchors)
}

// Anchor returns a copy of the anchor at index i.
func (s *AnchorSet) Anchor(i int) (Anchor, error) {
	if err := s.checkIndex(i); err != nil {
		return Anchor{}, err
	}
	return s.anchors[i], nil
}

func (s *AnchorSet) Origin(i int) (vec3.T, error) {
	if err := s.checkIndex(i); err != nil {
		return vec3.T{}, err
	}
	return s.anchors[i].origin, nil
}

func (s *AnchorSet) SetOrigin(i int, p vec3.T) error {
	if err := s.checkIndex(i); err != nil {
		return xerrors.Errorf("while setting origin: %w", err)
	}
	s.anchors[i].origin = p
	s.upToDate = false
	return nil
}

func (s *AnchorSet) Target(i int) (vec3.T, error) {
	if err := s.checkIndex(i); err != nil {
		return vec3.T{}, err
	}
	return s.anchors[i].target, nil
}

func (s *AnchorSet) SetTarget(i int, p vec3.T) error {
	if err := s.checkIndex(i); err != nil {
		return xerrors.Errorf("while setting target: %w", err)
	}
	s.anchors[i].target = p
	s.upToDate = false
	return nil
}

func (s *AnchorSet) WeightingExponent1() float64 {
	return s.weightingExponent1
}

// SetWeightingExponent1 usually takes values between 0 and 2.
func (s *AnchorSet) SetWeightingExponent1(v float64) {
	s.weightingExponent1 = v
	s.upToDate = false
}

func (s *AnchorSet) WeightingExponent2() float64 {
	return s.weightingExponent2
}

// SetWeightingExponent2 usually takes values of 1 or higher.
func (s *AnchorSet) SetWeightingExponent2(v float64) {
	s.weightingExponent2 = v
	s.upToDate = false
}

// Clean reports whether every cached local transform reflects the current
// anchors and exponents.
func (s *AnchorSet) Clean() bool {
	return s.upToDate
}

// FindAnchorNear returns the highest index whose selected position lies
// within tolerance of p, or -1.  Later anchors win ties because the scan runs
// from the most recently added anchor backward.
func (s *AnchorSet) FindAnchorNear(p vec3.T, tolerance float64, role Role) int {
	for i := len(s.anchors) - 1; i >= 0; i-- {
		a := &s.anchors[i]
		if role != RoleTarget && vec3.Dist(p, a.origin) <= tolerance {
			return i
		}
		if role != RoleOrigin && vec3.Dist(p, a.target) <= tolerance {
			return i
		}
	}
	return -1
}

func (s *AnchorSet) checkIndex(i int) error {
	if i < 0 || i >= len(s.anchors) {
		return newIndexError(i, len(s.anchors))
	}
	return nil
}
