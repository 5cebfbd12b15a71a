package tracer

import (
	"math"

	"github.com/achilleasa/rigel/types"
)

// Default max parametric distance for new rays.
const Infinity = math.MaxFloat32

// A ray with an origin, a direction and a valid parametric range
// (0, TMax). Directions are not required to be normalized; parametric
// distances are expressed in units of the direction length.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	TMax   float32

	// Time associated with the generating camera sample.
	Time float32

	// Origins and directions for the rays one pixel to the right and
	// one pixel below this one. Nil when no differentials are tracked.
	Diff *RayDifferential
}

// Offset rays used to estimate the film footprint of a ray.
type RayDifferential struct {
	RxOrigin types.Vec3
	RxDir    types.Vec3
	RyOrigin types.Vec3
	RyDir    types.Vec3
}

// Create a ray with an unbounded parametric range.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		TMax:   Infinity,
	}
}

// Get the point at parametric distance t along the ray.
func (r *Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
