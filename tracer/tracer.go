package tracer

import (
	"github.com/achilleasa/rigel/tracer/bsdf"
	"github.com/achilleasa/rigel/types"
)

// The Scene interface is implemented by scene containers that can
// answer intersection queries from integrators. Implementations must
// be safe for concurrent use by multiple render workers.
type Scene interface {
	// Find the nearest intersection along the ray within its
	// parametric range. Intersection failures surface as a miss.
	NearestHit(r *Ray) (*SurfaceInteraction, bool)

	// Check whether any primitive blocks the ray within its
	// parametric range.
	Occluded(r *Ray) bool

	// Get the set of lights that illuminate the scene.
	Lights() []Light
}

// The Material interface is implemented by all surface materials. A
// material evaluates its textures at an intersection point and builds
// the BSDF that describes scattering there.
type Material interface {
	BSDF(si *SurfaceInteraction) *bsdf.BSDF
}

// The Light interface is implemented by all light sources.
type Light interface {
	// Sample the incident radiance arriving at p from this light.
	//
	// This method returns the radiance, the normalized direction from
	// p towards the light, the distance to the sampled point and the
	// pdf of the sample. A zero pdf flags an invalid sample.
	SampleIncident(p types.Vec3, u types.Vec2) (li types.Spectrum, wi types.Vec3, dist float32, pdf float32)

	// Get the total emitted power of the light.
	Power() types.Spectrum
}

// The Integrator interface is implemented by all light transport
// algorithms.
type Integrator interface {
	// Estimate the radiance arriving at the ray origin from the ray
	// direction.
	IncomingRadiance(r Ray, sc Scene, smp Sampler) types.Spectrum
}
