package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

// An analytic sphere.
type Sphere struct {
	center types.Vec3
	radius float32
}

// Create a sphere with the given center and radius.
func NewSphere(center types.Vec3, radius float32) *Sphere {
	return &Sphere{
		center: center,
		radius: radius,
	}
}

func (s *Sphere) Validate() error {
	if s.radius <= 0 {
		return fmt.Errorf("scene: sphere radius %g must be positive", s.radius)
	}
	return nil
}

func (s *Sphere) Intersect(r *tracer.Ray) (tracer.SurfaceInteraction, float32, bool) {
	t, ok := s.hit(r)
	if !ok {
		return tracer.SurfaceInteraction{}, 0, false
	}

	p := r.At(t)
	n := p.Sub(s.center).Mul(1 / s.radius)

	// Tangent along the direction of increasing longitude; at the
	// poles any frame around the normal works.
	dpdu := types.XYZ(-n[1], n[0], 0)
	if dpdu.LenSq() < 1e-12 {
		dpdu, _ = types.CoordinateSystem(n)
	}

	return tracer.SurfaceInteraction{
		Point:         p,
		T:             t,
		Normal:        n,
		ShadingNormal: n,
		Dpdu:          dpdu,
	}, t, true
}

func (s *Sphere) IntersectP(r *tracer.Ray) bool {
	_, ok := s.hit(r)
	return ok
}

// Solve the sphere quadratic for the nearest hit in (0, r.TMax).
func (s *Sphere) hit(r *tracer.Ray) (float32, bool) {
	oc := r.Origin.Sub(s.center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.radius*s.radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t0 := (-b - sqrtDisc) / (2 * a)
	t1 := (-b + sqrtDisc) / (2 * a)

	if t0 > 0 && t0 < r.TMax {
		return t0, true
	}
	if t1 > 0 && t1 < r.TMax {
		return t1, true
	}
	return 0, false
}
