package mat33

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"stretchwarp/vmath/vec3"
)

func TestMulMM(t *testing.T) {
	a := T{
		1, 2, 0,
		0, 1, 0,
		0, 0, 3,
	}
	b := T{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	}
	want := T{
		2, -1, 0,
		1, 0, 0,
		0, 0, 3,
	}
	if diff := cmp.Diff(MulMM(a, b), want); diff != "" {
		t.Errorf("Bad product; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(MulMM(a, Identity()), a); diff != "" {
		t.Errorf("Identity changed the matrix; diff (-got +want)\n%s", diff)
	}
}

func TestMulMV(t *testing.T) {
	m := T{
		0, -2, 0,
		2, 0, 0,
		0, 0, 2,
	}

	got := MulMV(m, vec3.T{1, 2, 3})
	want := vec3.T{-4, 2, 6}
	if got != want {
		t.Errorf("Bad product; got %v, want %v", got, want)
	}
}
