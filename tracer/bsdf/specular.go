package bsdf

import "github.com/achilleasa/rigel/types"

// SpecularReflection scatters incident light into the single mirror
// direction.
type SpecularReflection struct {
	r       types.Spectrum
	fresnel Fresnel
}

// Create a perfectly specular reflection lobe scaled by r and the
// given fresnel term.
func NewSpecularReflection(r types.Spectrum, fresnel Fresnel) *SpecularReflection {
	return &SpecularReflection{r: r, fresnel: fresnel}
}

func (s *SpecularReflection) Type() Type {
	return Reflection | Specular
}

// Delta distributions evaluate to black for explicitly supplied
// direction pairs.
func (s *SpecularReflection) F(wo, wi types.Vec3) types.Spectrum {
	return types.Spectrum{}
}

func (s *SpecularReflection) SampleF(wo types.Vec3, u types.Vec2) (types.Vec3, types.Spectrum, float32) {
	wi := Reflect(wo)
	cosThetaI := CosTheta(wi)
	if cosThetaI == 0 {
		return types.Vec3{}, types.Spectrum{}, 0
	}

	f := s.fresnel.Evaluate(cosThetaI).Modulate(s.r).Div(AbsCosTheta(wi))
	return wi, f, 1
}

// SpecularTransmission scatters incident light into the single
// refraction direction through a dielectric boundary.
type SpecularTransmission struct {
	t       types.Spectrum
	etaA    float32
	etaB    float32
	fresnel Fresnel
}

// Create a perfectly specular transmission lobe scaled by t for a
// boundary between media with indices of refraction etaA (above the
// surface) and etaB (below).
func NewSpecularTransmission(t types.Spectrum, etaA, etaB float32) *SpecularTransmission {
	return &SpecularTransmission{
		t:       t,
		etaA:    etaA,
		etaB:    etaB,
		fresnel: NewFresnelDielectric(etaA, etaB),
	}
}

func (s *SpecularTransmission) Type() Type {
	return Transmission | Specular
}

func (s *SpecularTransmission) F(wo, wi types.Vec3) types.Spectrum {
	return types.Spectrum{}
}

func (s *SpecularTransmission) SampleF(wo types.Vec3, u types.Vec2) (types.Vec3, types.Spectrum, float32) {
	// Pick incident/transmitted indices based on the side wo arrives
	// from.
	entering := CosTheta(wo) > 0
	etaI, etaT := s.etaA, s.etaB
	if !entering {
		etaI, etaT = s.etaB, s.etaA
	}

	n := types.Faceforward(types.XYZ(0, 0, 1), wo)
	wi, ok := Refract(wo, n, etaI/etaT)
	if !ok {
		// Total internal reflection; no transmitted sample exists.
		return types.Vec3{}, types.Spectrum{}, 0
	}

	cosThetaI := CosTheta(wi)
	if cosThetaI == 0 {
		return types.Vec3{}, types.Spectrum{}, 0
	}

	ft := s.t.Modulate(types.Grey(1).Sub(s.fresnel.Evaluate(cosThetaI)))

	// Account for the radiance compression when entering a medium
	// with a different index of refraction.
	ft = ft.Mul((etaI * etaI) / (etaT * etaT))

	return wi, ft.Div(AbsCosTheta(wi)), 1
}
