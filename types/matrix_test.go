package types

import (
	"math"
	"testing"
)

func TestRotation(t *testing.T) {
	m := Rotate4(XYZ(0, 0, 1), 90)
	out := m.MulVector(XYZ(1, 0, 0))
	if !approxEqualVec3(out, XYZ(0, 1, 0)) {
		t.Fatalf("expected rotating the X axis by 90 degrees around Z to yield the Y axis; got %v", out)
	}

	// Axis-angle rotation must agree with the per-axis rotation helpers
	// and accept non-normalized axes.
	v := XYZ(0.3, -1.2, 2.5)
	specs := []struct {
		axis Vec3
		m    Mat4
	}{
		{XYZ(1, 0, 0), RotateX4(33)},
		{XYZ(0, 1, 0), RotateY4(33)},
		{XYZ(0, 0, 1), RotateZ4(33)},
	}
	for index, s := range specs {
		exp := s.m.MulVector(v)
		if got := Rotate4(s.axis, 33).MulVector(v); !approxEqualVec3(got, exp) {
			t.Fatalf("[spec %d] expected %v; got %v", index, exp, got)
		}
		if got := Rotate4(s.axis.Mul(4), 33).MulVector(v); !approxEqualVec3(got, exp) {
			t.Fatalf("[spec %d] expected rotation around a scaled axis to yield %v; got %v", index, exp, got)
		}
	}
}

func TestArbitraryAxisRotation(t *testing.T) {
	axis := XYZ(1, 2, -3)
	m := Rotate4(axis, 77)

	if got := m.MulVector(axis); !approxEqualVec3(got, axis) {
		t.Fatalf("expected rotation axis to be left unchanged; got %v", got)
	}

	v := XYZ(-2, 0.5, 4)
	if got := m.MulVector(v); math.Abs(float64(got.Len()-v.Len())) > 1e-4 {
		t.Fatalf("expected rotation to preserve vector length %f; got %f", v.Len(), got.Len())
	}

	// Rotating back by the opposite angle restores the input
	if got := Rotate4(axis, -77).MulVector(m.MulVector(v)); !approxEqualVec3(got, v) {
		t.Fatalf("expected inverse rotation to restore %v; got %v", v, got)
	}
}

func TestAffineTransforms(t *testing.T) {
	m := Translate4(XYZ(1, 2, 3)).Mul4(Scale4(XYZ(2, 2, 2)))

	p := m.MulPoint(XYZ(1, 1, 1))
	if !approxEqualVec3(p, XYZ(3, 4, 5)) {
		t.Fatalf("expected transformed point to be (3, 4, 5); got %v", p)
	}

	v := m.MulVector(XYZ(1, 1, 1))
	if !approxEqualVec3(v, XYZ(2, 2, 2)) {
		t.Fatalf("expected transformed vector to ignore translation and be (2, 2, 2); got %v", v)
	}

	back := m.Inv().MulPoint(p)
	if !approxEqualVec3(back, XYZ(1, 1, 1)) {
		t.Fatalf("expected inverse transform to restore the original point; got %v", back)
	}
}

func TestRayTransform(t *testing.T) {
	r := NewRay(XYZ(0, 0, 0), XYZ(0, 0, -1))
	tr := r.Transform(Translate4(XYZ(0, 5, 0)))
	if tr.Origin != XYZ(0, 5, 0) {
		t.Fatalf("expected origin to be translated; got %v", tr.Origin)
	}
	if tr.Dir != XYZ(0, 0, -1) {
		t.Fatalf("expected direction to be unaffected by translation; got %v", tr.Dir)
	}
	if p := r.At(2); p != XYZ(0, 0, -2) {
		t.Fatalf("expected point at t=2 to be (0, 0, -2); got %v", p)
	}
}
