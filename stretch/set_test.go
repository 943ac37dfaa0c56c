package stretch

import (
	"testing"

	"golang.org/x/xerrors"

	"stretchwarp/vmath/vec3"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	if got := s.WeightingExponent1(); got != 1 {
		t.Errorf("Bad default exponent 1; got %v, want 1", got)
	}
	if got := s.WeightingExponent2(); got != 2 {
		t.Errorf("Bad default exponent 2; got %v, want 2", got)
	}
	if got := s.AnchorCount(); got != 0 {
		t.Errorf("Bad anchor count; got %d, want 0", got)
	}
}

func TestAddFixedAnchorUsesPointForBoth(t *testing.T) {
	s := New()
	s.AddFixedAnchor(vec3.T{3, 4, 0})

	a, err := s.Anchor(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Origin() != (vec3.T{3, 4, 0}) || a.Target() != (vec3.T{3, 4, 0}) {
		t.Errorf("Bad anchor; got origin %v target %v, want both [3 4 0]", a.Origin(), a.Target())
	}
}

func TestMutationsMarkDirty(t *testing.T) {
	mutations := []struct {
		desc string
		fn   func(s *AnchorSet) error
	}{
		{desc: "add", fn: func(s *AnchorSet) error {
			s.AddFixedAnchor(vec3.T{9, 9, 9})
			return nil
		}},
		{desc: "remove by index", fn: func(s *AnchorSet) error { return s.RemoveAnchorAt(0) }},
		{desc: "set origin", fn: func(s *AnchorSet) error { return s.SetOrigin(1, vec3.T{1, 1, 1}) }},
		{desc: "set target", fn: func(s *AnchorSet) error { return s.SetTarget(1, vec3.T{1, 1, 1}) }},
		{desc: "exponent 1", fn: func(s *AnchorSet) error {
			s.SetWeightingExponent1(1.5)
			return nil
		}},
		{desc: "exponent 2", fn: func(s *AnchorSet) error {
			s.SetWeightingExponent2(3)
			return nil
		}},
	}

	for _, m := range mutations {
		t.Run(m.desc, func(t *testing.T) {
			s := New()
			s.AddAnchor(vec3.T{0, 0, 0}, vec3.T{1, 0, 0})
			s.AddAnchor(vec3.T{5, 0, 0}, vec3.T{5, 1, 0})
			s.Transform(vec3.T{2, 2, 0})
			if !s.Clean() {
				t.Fatalf("Set not clean after Transform")
			}

			if err := m.fn(s); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Clean() {
				t.Errorf("Set still clean after mutation")
			}
		})
	}
}

func TestRemoveByHandleSurvivesIndexShift(t *testing.T) {
	s := New()
	h0 := s.AddFixedAnchor(vec3.T{0, 0, 0})
	h1 := s.AddFixedAnchor(vec3.T{1, 0, 0})
	h2 := s.AddFixedAnchor(vec3.T{2, 0, 0})

	if err := s.RemoveAnchor(h0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if i, ok := s.IndexOf(h2); !ok || i != 1 {
		t.Errorf("Bad index for third anchor after removal; got %d, %v, want 1, true", i, ok)
	}

	if err := s.RemoveAnchor(h2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	a, err := s.Anchor(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Handle() != h1 {
		t.Errorf("Wrong anchor left; got %v, want %v", a.Handle(), h1)
	}
}

func TestRemoveUnknownHandle(t *testing.T) {
	s := New()
	h := s.AddFixedAnchor(vec3.T{0, 0, 0})
	s.AddFixedAnchor(vec3.T{1, 0, 0})
	if err := s.RemoveAnchor(h); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s.UpdateAnchorMatrices()

	err := s.RemoveAnchor(h)
	if !xerrors.Is(err, ErrInvalidAnchorReference) {
		t.Fatalf("Bad error; got %v, want ErrInvalidAnchorReference", err)
	}
	if err := s.RemoveAnchor(Handle{}); !xerrors.Is(err, ErrInvalidAnchorReference) {
		t.Fatalf("Bad error for zero handle; got %v, want ErrInvalidAnchorReference", err)
	}
	if s.AnchorCount() != 1 {
		t.Errorf("Failed removal changed anchor count to %d", s.AnchorCount())
	}
	if !s.Clean() {
		t.Errorf("Failed removal dirtied the set")
	}
}

func TestIndexOutOfRange(t *testing.T) {
	s := New()
	s.AddFixedAnchor(vec3.T{0, 0, 0})
	s.AddFixedAnchor(vec3.T{1, 0, 0})
	s.UpdateAnchorMatrices()

	calls := []struct {
		desc string
		fn   func() error
	}{
		{desc: "anchor", fn: func() error {
			_, err := s.Anchor(2)
			return err
		}},
		{desc: "origin", fn: func() error {
			_, err := s.Origin(-1)
			return err
		}},
		{desc: "target", fn: func() error {
			_, err := s.Target(5)
			return err
		}},
		{desc: "set origin", fn: func() error { return s.SetOrigin(2, vec3.T{}) }},
		{desc: "set target", fn: func() error { return s.SetTarget(-3, vec3.T{}) }},
		{desc: "remove", fn: func() error { return s.RemoveAnchorAt(2) }},
	}

	for _, c := range calls {
		t.Run(c.desc, func(t *testing.T) {
			err := c.fn()
			if !xerrors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("Bad error; got %v, want ErrIndexOutOfRange", err)
			}
			var ie *IndexError
			if !xerrors.As(err, &ie) {
				t.Fatalf("Error %v is not an *IndexError", err)
			}
			if ie.Count != 2 {
				t.Errorf("Bad count in error; got %d, want 2", ie.Count)
			}
			if s.AnchorCount() != 2 || !s.Clean() {
				t.Errorf("Failed call changed the set")
			}
		})
	}

	if err := s.RemoveAnchorAt(7); !xerrors.Is(err, ErrInvalidAnchorReference) {
		t.Errorf("Bad error for removal; got %v, want ErrInvalidAnchorReference", err)
	}
	if _, err := s.Anchor(7); xerrors.Is(err, ErrInvalidAnchorReference) {
		t.Errorf("Lookup error %v should not be an ErrInvalidAnchorReference", err)
	}
}

func TestPositionsAreCopies(t *testing.T) {
	s := New()
	p := vec3.T{1, 2, 3}
	s.AddFixedAnchor(p)
	p[0] = 100

	got, err := s.Origin(0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != (vec3.T{1, 2, 3}) {
		t.Errorf("Stored origin aliased caller's point; got %v", got)
	}

	got[1] = 100
	again, _ := s.Origin(0)
	if again != (vec3.T{1, 2, 3}) {
		t.Errorf("Returned origin aliased stored point; got %v", again)
	}
}

func TestFindAnchorNear(t *testing.T) {
	s := New()
	s.AddAnchor(vec3.T{0, 0, 0}, vec3.T{10, 0, 0}) // 0
	s.AddAnchor(vec3.T{1, 0, 0}, vec3.T{20, 0, 0}) // 1
	s.AddAnchor(vec3.T{50, 0, 0}, vec3.T{0, 1, 0}) // 2

	testCases := []struct {
		desc      string
		p         vec3.T
		tolerance float64
		role      Role
		want      int
	}{
		{desc: "origin tie favors latest", p: vec3.T{0.5, 0, 0}, tolerance: 1, role: RoleOrigin, want: 1},
		{desc: "origin single", p: vec3.T{-0.5, 0, 0}, tolerance: 1, role: RoleOrigin, want: 0},
		{desc: "origin ignores targets", p: vec3.T{20, 0, 0}, tolerance: 0.1, role: RoleOrigin, want: -1},
		{desc: "target", p: vec3.T{20, 0, 0}, tolerance: 0.1, role: RoleTarget, want: 1},
		{desc: "target ignores origins", p: vec3.T{50, 0, 0}, tolerance: 0.1, role: RoleTarget, want: -1},
		{desc: "either sees target of latest", p: vec3.T{0, 0.5, 0}, tolerance: 1, role: RoleEither, want: 2},
		{desc: "either sees origin", p: vec3.T{50, 0, 0}, tolerance: 0, role: RoleEither, want: 2},
		{desc: "nothing near", p: vec3.T{100, 100, 100}, tolerance: 5, role: RoleEither, want: -1},
		{desc: "boundary inclusive", p: vec3.T{0, 0, 2}, tolerance: 2, role: RoleOrigin, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := s.FindAnchorNear(tc.p, tc.tolerance, tc.role); got != tc.want {
				t.Errorf("FindAnchorNear(%v, %v, %v); got %d, want %d", tc.p, tc.tolerance, tc.role, got, tc.want)
			}
		})
	}
}
