package scene

import (
	"testing"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

func TestSphereIntersect(t *testing.T) {
	type spec struct {
		sphere   *Sphere
		origin   types.Vec3
		dir      types.Vec3
		tMax     float32
		expHit   bool
		expT     float32
		expPoint types.Vec3
		expNorm  types.Vec3
	}
	specs := []spec{
		// Head-on hit from outside.
		spec{
			sphere:   NewSphere(types.Vec3{}, 1),
			origin:   types.XYZ(0, 0, -5),
			dir:      types.XYZ(0, 0, 1),
			expHit:   true,
			expT:     4,
			expPoint: types.XYZ(0, 0, -1),
			expNorm:  types.XYZ(0, 0, -1),
		},
		// Grazing hit at the top of the sphere.
		spec{
			sphere:   NewSphere(types.Vec3{}, 1),
			origin:   types.XYZ(0, 1, -5),
			dir:      types.XYZ(0, 0, 1),
			expHit:   true,
			expT:     5,
			expPoint: types.XYZ(0, 1, 0),
			expNorm:  types.XYZ(0, 1, 0),
		},
		// Ray passes above the sphere.
		spec{
			sphere: NewSphere(types.Vec3{}, 1),
			origin: types.XYZ(0, 2, -5),
			dir:    types.XYZ(0, 0, 1),
			expHit: false,
		},
		// Origin inside the sphere; the near root is behind the origin
		// so the far one is used.
		spec{
			sphere:   NewSphere(types.Vec3{}, 1),
			origin:   types.Vec3{},
			dir:      types.XYZ(0, 0, 1),
			expHit:   true,
			expT:     1,
			expPoint: types.XYZ(0, 0, 1),
			expNorm:  types.XYZ(0, 0, 1),
		},
		// Sphere entirely behind the ray origin.
		spec{
			sphere: NewSphere(types.Vec3{}, 1),
			origin: types.XYZ(0, 0, 5),
			dir:    types.XYZ(0, 0, 1),
			expHit: false,
		},
		// Larger radius moves the hit closer.
		spec{
			sphere:   NewSphere(types.Vec3{}, 2),
			origin:   types.XYZ(0, 0, -5),
			dir:      types.XYZ(0, 0, 1),
			expHit:   true,
			expT:     3,
			expPoint: types.XYZ(0, 0, -2),
			expNorm:  types.XYZ(0, 0, -1),
		},
		// Off-center sphere out of the ray path.
		spec{
			sphere: NewSphere(types.XYZ(5, 0, 0), 1),
			origin: types.XYZ(0, 0, -5),
			dir:    types.XYZ(0, 0, 1),
			expHit: false,
		},
		// Hit beyond the ray parametric range.
		spec{
			sphere: NewSphere(types.Vec3{}, 1),
			origin: types.XYZ(0, 0, -5),
			dir:    types.XYZ(0, 0, 1),
			tMax:   3,
			expHit: false,
		},
		// Unnormalized ray directions keep parametric distances.
		spec{
			sphere:   NewSphere(types.Vec3{}, 1),
			origin:   types.XYZ(0, 0, -5),
			dir:      types.XYZ(0, 0, 2),
			expHit:   true,
			expT:     2,
			expPoint: types.XYZ(0, 0, -1),
			expNorm:  types.XYZ(0, 0, -1),
		},
	}

	for index, s := range specs {
		r := tracer.NewRay(s.origin, s.dir)
		if s.tMax > 0 {
			r.TMax = s.tMax
		}

		si, tHit, hit := s.sphere.Intersect(&r)
		if hit != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, hit)
		}
		if gotP := s.sphere.IntersectP(&r); gotP != s.expHit {
			t.Fatalf("[spec %d] expected IntersectP to be %t; got %t", index, s.expHit, gotP)
		}
		if !s.expHit {
			continue
		}

		if !approxEq(tHit, s.expT, 1e-5) {
			t.Fatalf("[spec %d] expected hit distance %g; got %g", index, s.expT, tHit)
		}
		if si.T != tHit {
			t.Fatalf("[spec %d] expected interaction distance to match the hit distance %g; got %g", index, tHit, si.T)
		}
		if !approxEqVec3(si.Point, s.expPoint, 1e-5) {
			t.Fatalf("[spec %d] expected hit point %v; got %v", index, s.expPoint, si.Point)
		}
		if !approxEqVec3(si.Normal, s.expNorm, 1e-5) {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNorm, si.Normal)
		}
		if !approxEqVec3(si.ShadingNormal, si.Normal, 1e-6) {
			t.Fatalf("[spec %d] expected the shading normal to match the geometric normal; got %v", index, si.ShadingNormal)
		}
	}
}

func TestSphereSurfaceFrame(t *testing.T) {
	s := NewSphere(types.Vec3{}, 1)

	// Equator hits use the longitude tangent.
	r := tracer.NewRay(types.XYZ(0, 1, -5), types.XYZ(0, 0, 1))
	si, _, hit := s.Intersect(&r)
	if !hit {
		t.Fatal("expected the equator ray to hit")
	}
	if exp := types.XYZ(-1, 0, 0); !approxEqVec3(si.Dpdu, exp, 1e-5) {
		t.Fatalf("expected tangent %v; got %v", exp, si.Dpdu)
	}

	// The longitude tangent vanishes at the poles; any unit tangent
	// orthogonal to the normal is acceptable there.
	r = tracer.NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1))
	si, _, hit = s.Intersect(&r)
	if !hit {
		t.Fatal("expected the pole ray to hit")
	}
	if !approxEq(si.Dpdu.Len(), 1, 1e-5) {
		t.Fatalf("expected a unit pole tangent; got %v", si.Dpdu)
	}
	if !approxEq(si.Dpdu.Dot(si.Normal), 0, 1e-5) {
		t.Fatalf("expected the pole tangent to be orthogonal to the normal; got %v", si.Dpdu)
	}
}

func TestSphereValidate(t *testing.T) {
	type spec struct {
		radius float32
		expErr bool
	}
	specs := []spec{
		spec{radius: 1, expErr: false},
		spec{radius: 0.001, expErr: false},
		spec{radius: 0, expErr: true},
		spec{radius: -1, expErr: true},
	}
	for index, s := range specs {
		err := NewSphere(types.Vec3{}, s.radius).Validate()
		if s.expErr && err == nil {
			t.Fatalf("[spec %d] expected a validation error for radius %g", index, s.radius)
		}
		if !s.expErr && err != nil {
			t.Fatalf("[spec %d] expected no validation error for radius %g; got %v", index, s.radius, err)
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

func approxEqVec3(a, b types.Vec3, eps float32) bool {
	return approxEq(a[0], b[0], eps) && approxEq(a[1], b[1], eps) && approxEq(a[2], b[2], eps)
}
