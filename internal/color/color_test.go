package color

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

func TestClamp(t *testing.T) {
	tests := []struct {
		c    Color
		want Color
	}{
		{Color{-1, 0.5, 2}, Color{0, 0.5, 1}},
		{Color{0.25, 0.25, 0.25}, Color{0.25, 0.25, 0.25}},
	}
	for _, tt := range tests {
		got := tt.c.Clamp()
		if diff := cmp.Diff(tt.want, got, approxOpts); diff != "" {
			t.Errorf("Clamp() mismatch (-want +got):\n%s", diff)
		}
		if got.R < 0 || got.R > 1 || got.G < 0 || got.G > 1 || got.B < 0 || got.B > 1 {
			t.Errorf("Clamp() left a component out of [0,1]: %v", got)
		}
	}
}

func TestMulIsComponentwise(t *testing.T) {
	a := Color{1, 0.5, 0}
	b := Color{0.5, 0.5, 1}
	got := a.Mul(b)
	want := Color{0.5, 0.25, 0}
	if diff := cmp.Diff(want, got, approxOpts); diff != "" {
		t.Errorf("Mul() mismatch (-want +got):\n%s", diff)
	}
}
