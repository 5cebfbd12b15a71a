package bsdf

import "github.com/achilleasa/rigel/types"

// Type classifies a scattering lobe by transport side and sharpness.
// Lobe types combine one or both of Reflection/Transmission with one
// of Diffuse/Glossy/Specular.
type Type uint8

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	All = Reflection | Transmission | Diffuse | Glossy | Specular
)

// Check whether every bit of t is present in flags.
func (t Type) Matches(flags Type) bool {
	return t&flags == t
}

// The BxDF interface is implemented by the fixed set of scattering
// lobes in this package. All directions are unit vectors in the local
// shading frame and point away from the surface.
type BxDF interface {
	// Get the lobe classification flags.
	Type() Type

	// Evaluate the lobe for an outgoing/incoming direction pair.
	// Delta lobes evaluate to black for any explicitly supplied pair.
	F(wo, wi types.Vec3) types.Spectrum

	// Draw an incoming direction for wo and evaluate the lobe for the
	// resulting pair. A zero pdf flags a failed sample. Delta lobes
	// report pdf 1 and fold the implied 1/|cos| into the returned
	// value.
	SampleF(wo types.Vec3, u types.Vec2) (wi types.Vec3, f types.Spectrum, pdf float32)
}
