package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpts = cmpopts.EquateApprox(1e-5, 0.0)

func TestNormalize(t *testing.T) {
	tests := []struct {
		v    Vector
		want Vector
	}{
		{v: Vector{DX: 2, DY: 0, DZ: 0}, want: Vector{DX: 1, DY: 0, DZ: 0}},
		{v: Vector{DX: 0, DY: -12, DZ: 5}, want: Vector{DX: 0, DY: -12.0 / 13, DZ: 5.0 / 13}},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			got := tt.v.Normalize()
			if diff := cmp.Diff(tt.want, got, approxOpts); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(1.0, got.Magnitude(), approxOpts); diff != "" {
				t.Errorf("Normalize() is not unit length: %v", got.Magnitude())
			}
		})
	}
}

func TestReflectProperties(t *testing.T) {
	tests := []struct {
		name string
		v, n Vector
	}{
		{"straight on", Vector{0, 0, -1}, Vector{0, 0, 1}},
		{"glancing", Vector{1, -1, 0}.Normalize(), Vector{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.v.Reflect(tt.n)
			if diff := cmp.Diff(1.0, r.Magnitude(), approxOpts); diff != "" {
				t.Errorf("Reflect() is not unit length: %v", r.Magnitude())
			}
			if diff := cmp.Diff(-tt.v.Dot(tt.n), r.Dot(tt.n), approxOpts); diff != "" {
				t.Errorf("Reflect() . n mismatch (-want +got):\n%s", diff)
			}
			rr := r.Reflect(tt.n)
			if diff := cmp.Diff(tt.v, rr, approxOpts); diff != "" {
				t.Errorf("Reflect(Reflect(v,n),n) != v (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRefractIdentityIndex(t *testing.T) {
	v := Vector{DX: 0.3, DY: -0.9, DZ: 0.1}.Normalize()
	n := Vector{DX: 0, DY: 1, DZ: 0}
	got := v.Refract(n, 1.0)
	if diff := cmp.Diff(v, got, approxOpts); diff != "" {
		t.Errorf("Refract(v, n, 1) != v (-want +got):\n%s", diff)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	// A steep glancing angle entering a medium with a much lower refractive
	// index should trigger total internal reflection.
	v := Vector{DX: 1, DY: -0.05, DZ: 0}.Normalize()
	n := Vector{DX: 0, DY: 1, DZ: 0}
	n_ := 0.5

	d := v.Dot(n)
	a := 1 - (1-d*d)/(n_*n_)
	if a >= 0 {
		t.Fatalf("test setup error: expected total internal reflection, a=%v", a)
	}

	got := v.Refract(n, n_)
	want := v.Reflect(n)
	if diff := cmp.Diff(want, got, approxOpts); diff != "" {
		t.Errorf("Refract() under TIR mismatch (-want +got):\n%s", diff)
	}
}

func TestCrossOrthogonal(t *testing.T) {
	x := Vector{DX: 1}
	y := Vector{DY: 1}
	got := x.Cross(y)
	want := Vector{DZ: 1}
	if diff := cmp.Diff(want, got, approxOpts); diff != "" {
		t.Errorf("Cross() mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	a := Vector{DX: 1, DY: 0, DZ: 0}
	b := Vector{DX: 0, DY: 1, DZ: 0}

	if diff := cmp.Diff(a, Interpolate(a, b, 1), approxOpts); diff != "" {
		t.Errorf("Interpolate(a, b, 1) != a (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b, Interpolate(a, b, 0), approxOpts); diff != "" {
		t.Errorf("Interpolate(a, b, 0) != b (-want +got):\n%s", diff)
	}
}

func TestAxisCycle(t *testing.T) {
	if AxisX.Next() != AxisY || AxisY.Next() != AxisZ || AxisZ.Next() != AxisX {
		t.Errorf("axis cycle broken: X->%v Y->%v Z->%v", AxisX.Next(), AxisY.Next(), AxisZ.Next())
	}
}
