package tracer

import (
	"math"

	"github.com/achilleasa/rigel/types"
)

// An isotropic point light emitting the same intensity in all
// directions.
type PointLight struct {
	pos       types.Vec3
	intensity types.Spectrum
}

// Create a new point light at pos with the given radiant intensity.
func NewPointLight(pos types.Vec3, intensity types.Spectrum) *PointLight {
	return &PointLight{
		pos:       pos,
		intensity: intensity,
	}
}

// Sample the incident radiance arriving at p from this light. Point
// lights are delta distributions so the pdf is always 1; the radiance
// falls off with the squared distance to the light.
func (l *PointLight) SampleIncident(p types.Vec3, u types.Vec2) (types.Spectrum, types.Vec3, float32, float32) {
	toLight := l.pos.Sub(p)
	distSq := toLight.LenSq()
	if distSq == 0 {
		// Shading point coincides with the light.
		return types.Spectrum{}, types.Vec3{}, 0, 0
	}

	dist := float32(math.Sqrt(float64(distSq)))
	wi := toLight.Mul(1 / dist)
	return l.intensity.Div(distSq), wi, dist, 1
}

// Get the total emitted power of the light.
func (l *PointLight) Power() types.Spectrum {
	return l.intensity.Mul(4 * math.Pi)
}

// VisibilityTester checks whether the segment between a surface
// interaction and a target point is free of occluders.
type VisibilityTester struct {
	ray Ray
}

// Create a visibility tester for the segment between si and target.
func NewVisibilityTester(si *SurfaceInteraction, target types.Vec3) VisibilityTester {
	return VisibilityTester{
		ray: si.ShadowRayTo(target),
	}
}

// Check that no scene primitive occludes the tested segment.
func (v *VisibilityTester) Unoccluded(sc Scene) bool {
	return !sc.Occluded(&v.ray)
}
