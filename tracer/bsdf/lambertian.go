package bsdf

import "github.com/achilleasa/rigel/types"

// LambertianReflection scatters incident light equally in all
// directions of the upper hemisphere.
type LambertianReflection struct {
	r types.Spectrum
}

// Create a lambertian lobe with hemispherical reflectance r.
func NewLambertianReflection(r types.Spectrum) *LambertianReflection {
	return &LambertianReflection{r: r}
}

func (l *LambertianReflection) Type() Type {
	return Reflection | Diffuse
}

func (l *LambertianReflection) F(wo, wi types.Vec3) types.Spectrum {
	return l.r.Mul(invPi)
}

// Sample an incoming direction proportionally to the cosine term,
// which matches the constant lobe value exactly.
func (l *LambertianReflection) SampleF(wo types.Vec3, u types.Vec2) (types.Vec3, types.Spectrum, float32) {
	wi := CosineSampleHemisphere(u)
	if wo[2] < 0 {
		wi[2] = -wi[2]
	}
	pdf := AbsCosTheta(wi) * invPi
	return wi, l.F(wo, wi), pdf
}
