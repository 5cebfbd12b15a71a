package scene

import (
	"fmt"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

// An infinite plane through a point.
type Plane struct {
	point  types.Vec3
	normal types.Vec3
	dpdu   types.Vec3
}

// Create a plane through point with the given surface normal.
func NewPlane(point, normal types.Vec3) *Plane {
	n := normal.Normalize()
	var dpdu types.Vec3
	if n != (types.Vec3{}) {
		dpdu, _ = types.CoordinateSystem(n)
	}

	return &Plane{
		point:  point,
		normal: n,
		dpdu:   dpdu,
	}
}

func (p *Plane) Validate() error {
	if p.normal == (types.Vec3{}) {
		return fmt.Errorf("scene: plane normal must be non-zero")
	}
	return nil
}

func (p *Plane) Intersect(r *tracer.Ray) (tracer.SurfaceInteraction, float32, bool) {
	t, ok := p.hit(r)
	if !ok {
		return tracer.SurfaceInteraction{}, 0, false
	}

	return tracer.SurfaceInteraction{
		Point:         r.At(t),
		T:             t,
		Normal:        p.normal,
		ShadingNormal: p.normal,
		Dpdu:          p.dpdu,
	}, t, true
}

func (p *Plane) IntersectP(r *tracer.Ray) bool {
	_, ok := p.hit(r)
	return ok
}

func (p *Plane) hit(r *tracer.Ray) (float32, bool) {
	denom := p.normal.Dot(r.Dir)
	if abs32(denom) < 1e-7 {
		// Ray travels parallel to the plane.
		return 0, false
	}

	t := p.normal.Dot(p.point.Sub(r.Origin)) / denom
	if t <= 0 || t >= r.TMax {
		return 0, false
	}
	return t, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
