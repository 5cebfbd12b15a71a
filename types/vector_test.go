package types

import (
	"math"
	"testing"
)

func TestVec3Normalize(t *testing.T) {
	type spec struct {
		in  Vec3
		exp Vec3
	}
	specs := []spec{
		spec{in: XYZ(0, 0, 2), exp: XYZ(0, 0, 1)},
		spec{in: XYZ(3, 4, 0), exp: XYZ(0.6, 0.8, 0)},
		spec{in: XYZ(-1, 0, 0), exp: XYZ(-1, 0, 0)},
		// Near-zero vectors degenerate to the zero vector instead of
		// blowing up to non-finite components.
		spec{in: Vec3{}, exp: Vec3{}},
		spec{in: XYZ(1e-8, 0, 0), exp: Vec3{}},
	}
	for index, s := range specs {
		if got := s.in.Normalize(); !approxEqVec3(got, s.exp, 1e-6) {
			t.Fatalf("[spec %d] expected %v to normalize to %v; got %v", index, s.in, s.exp, got)
		}
	}
}

func TestCoordinateSystem(t *testing.T) {
	specs := []Vec3{
		XYZ(0, 0, 1),
		XYZ(0, 0, -1),
		XYZ(1, 0, 0),
		XYZ(0, 1, 0),
		XYZ(0.48, 0.6, 0.64),
		XYZ(1, 2, 3).Normalize(),
	}
	for index, v1 := range specs {
		v2, v3 := CoordinateSystem(v1)

		if !approxEq(v2.Len(), 1, 1e-5) || !approxEq(v3.Len(), 1, 1e-5) {
			t.Fatalf("[spec %d] expected unit basis vectors; got %v and %v", index, v2, v3)
		}
		if !approxEq(v1.Dot(v2), 0, 1e-5) || !approxEq(v1.Dot(v3), 0, 1e-5) || !approxEq(v2.Dot(v3), 0, 1e-5) {
			t.Fatalf("[spec %d] expected an orthogonal basis; got %v, %v, %v", index, v1, v2, v3)
		}
		// The basis must be right-handed so frame changes preserve
		// orientation.
		if !approxEqVec3(v2.Cross(v3), v1, 1e-5) {
			t.Fatalf("[spec %d] expected a right-handed basis; got %v, %v, %v", index, v1, v2, v3)
		}
	}
}

func TestFaceforward(t *testing.T) {
	type spec struct {
		n   Vec3
		v   Vec3
		exp Vec3
	}
	specs := []spec{
		spec{n: XYZ(0, 0, 1), v: XYZ(0, 0, 1), exp: XYZ(0, 0, 1)},
		spec{n: XYZ(0, 0, 1), v: XYZ(0.3, 0.4, -0.5), exp: XYZ(0, 0, -1)},
		// Orthogonal directions leave the normal untouched.
		spec{n: XYZ(0, 0, 1), v: XYZ(1, 0, 0), exp: XYZ(0, 0, 1)},
		spec{n: XYZ(0, -1, 0), v: XYZ(0, 5, 0), exp: XYZ(0, 1, 0)},
	}
	for index, s := range specs {
		if got := Faceforward(s.n, s.v); got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestVec3Products(t *testing.T) {
	x, y, z := XYZ(1, 0, 0), XYZ(0, 1, 0), XYZ(0, 0, 1)

	if got := x.Cross(y); got != z {
		t.Fatalf("expected x cross y to be z; got %v", got)
	}
	if got := y.Cross(x); got != z.Neg() {
		t.Fatalf("expected y cross x to be -z; got %v", got)
	}
	if got := XYZ(1, 2, 3).Dot(XYZ(4, -5, 6)); got != 12 {
		t.Fatalf("expected dot product 12; got %g", got)
	}
	if got := XYZ(0, 0, 1).AbsDot(XYZ(0, 0, -2)); got != 2 {
		t.Fatalf("expected absolute dot product 2; got %g", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a, b := XYZ(1, 5, -3), XYZ(2, -4, 0)

	if exp := XYZ(1, -4, -3); MinVec3(a, b) != exp {
		t.Fatalf("expected min %v; got %v", exp, MinVec3(a, b))
	}
	if exp := XYZ(2, 5, 0); MaxVec3(a, b) != exp {
		t.Fatalf("expected max %v; got %v", exp, MaxVec3(a, b))
	}
}

func TestVec3IsFinite(t *testing.T) {
	type spec struct {
		in  Vec3
		exp bool
	}
	specs := []spec{
		spec{in: XYZ(1, 2, 3), exp: true},
		spec{in: Vec3{}, exp: true},
		spec{in: XYZ(float32(math.NaN()), 0, 0), exp: false},
		spec{in: XYZ(0, float32(math.Inf(1)), 0), exp: false},
		spec{in: XYZ(0, 0, float32(math.Inf(-1))), exp: false},
	}
	for index, s := range specs {
		if got := s.in.IsFinite(); got != s.exp {
			t.Fatalf("[spec %d] expected IsFinite to be %t for %v; got %t", index, s.exp, s.in, got)
		}
	}
}

func approxEq(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func approxEqVec3(a, b Vec3, eps float32) bool {
	return approxEq(a[0], b[0], eps) && approxEq(a[1], b[1], eps) && approxEq(a[2], b[2], eps)
}
