package tracer

import "github.com/achilleasa/rigel/types"

const (
	// Offset applied to spawned ray origins along the geometric normal
	// to avoid self-intersection with the surface they leave from.
	originEpsilon = 1e-3

	// Fraction of the distance to a shadow ray target that is excluded
	// from occlusion tests so the target surface itself never counts
	// as an occluder.
	shadowEpsilon = 1e-4
)

// SurfaceInteraction describes the local differential geometry at a
// ray-surface intersection together with the material attached to the
// intersected primitive.
type SurfaceInteraction struct {
	// Intersection point.
	Point types.Vec3

	// Parametric hit distance along the intersecting ray.
	T float32

	// Direction pointing back towards the ray origin.
	Wo types.Vec3

	// Geometric normal of the intersected surface.
	Normal types.Vec3

	// Interpolated shading normal and primary surface tangent.
	ShadingNormal types.Vec3
	Dpdu          types.Vec3

	// The material at the intersection point.
	Material Material
}

// Spawn a ray leaving the intersection point towards dir. The origin
// is nudged off the surface along the geometric normal so the spawned
// ray cannot re-hit the surface it starts from.
func (si *SurfaceInteraction) SpawnRay(dir types.Vec3) Ray {
	return NewRay(si.offsetOrigin(dir), dir)
}

// Spawn a shadow ray from the intersection point to target. The ray
// direction is left unnormalized so that the target lies at parametric
// distance 1; occlusion tests cover (0, 1-shadowEpsilon).
func (si *SurfaceInteraction) ShadowRayTo(target types.Vec3) Ray {
	origin := si.offsetOrigin(target.Sub(si.Point))
	return Ray{
		Origin: origin,
		Dir:    target.Sub(origin),
		TMax:   1 - shadowEpsilon,
	}
}

func (si *SurfaceInteraction) offsetOrigin(dir types.Vec3) types.Vec3 {
	n := types.Faceforward(si.Normal, dir)
	return si.Point.Add(n.Mul(originEpsilon))
}
