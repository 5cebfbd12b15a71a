package bsdf

import (
	"math"

	"github.com/achilleasa/rigel/types"
)

type distributionKind uint8

const (
	beckmannDist distributionKind = iota
	trowbridgeReitzDist
)

// Distribution describes the statistical orientation of the
// microfacets making up a rough surface. Two isotropic models are
// supported: Beckmann and Trowbridge-Reitz (GGX), selected at
// construction.
type Distribution struct {
	kind  distributionKind
	alpha float32
}

// Create a Beckmann microfacet distribution with the given slope
// deviation alpha.
func Beckmann(alpha float32) *Distribution {
	return &Distribution{kind: beckmannDist, alpha: alpha}
}

// Create a Trowbridge-Reitz (GGX) microfacet distribution with the
// given slope deviation alpha.
func TrowbridgeReitz(alpha float32) *Distribution {
	return &Distribution{kind: trowbridgeReitzDist, alpha: alpha}
}

// Map a perceptually linear roughness value in (0, 1] to a
// distribution alpha.
func RoughnessToAlpha(roughness float32) float32 {
	if roughness < 1e-3 {
		roughness = 1e-3
	}
	x := math.Log(float64(roughness))
	return float32(1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x)
}

// Differential area of microfacets oriented along the half vector wh.
func (d *Distribution) D(wh types.Vec3) float32 {
	tan2Theta := Tan2Theta(wh)
	if math.IsInf(float64(tan2Theta), 0) {
		return 0
	}

	cos2Theta := Cos2Theta(wh)
	cos4Theta := cos2Theta * cos2Theta
	alpha2 := d.alpha * d.alpha

	if d.kind == beckmannDist {
		return float32(math.Exp(float64(-tan2Theta/alpha2))) / (math.Pi * alpha2 * cos4Theta)
	}
	den := alpha2 + tan2Theta
	return alpha2 / (math.Pi * cos4Theta * den * den)
}

// Smith auxiliary function measuring invisible masked microfacet area
// per visible area along w.
func (d *Distribution) Lambda(w types.Vec3) float32 {
	absTanTheta := abs32(TanTheta(w))
	if math.IsInf(float64(absTanTheta), 0) {
		return 0
	}

	if d.kind == beckmannDist {
		a := 1 / (d.alpha * absTanTheta)
		if a >= 1.6 {
			return 0
		}
		return (1 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
	}

	alphaTan := d.alpha * absTanTheta
	return (-1 + sqrt32(1+alphaTan*alphaTan)) / 2
}

// Fraction of microfacets visible from direction w.
func (d *Distribution) G1(w types.Vec3) float32 {
	return 1 / (1 + d.Lambda(w))
}

// Fraction of microfacets visible from both wo and wi.
func (d *Distribution) G(wo, wi types.Vec3) float32 {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// Sample a half vector proportionally to the distribution, oriented to
// the hemisphere of wo.
func (d *Distribution) SampleWh(wo types.Vec3, u types.Vec2) types.Vec3 {
	var tan2Theta float32
	alpha2 := d.alpha * d.alpha

	if d.kind == beckmannDist {
		logSample := math.Log(float64(1 - u[0]))
		if math.IsInf(logSample, 0) {
			logSample = 0
		}
		tan2Theta = -alpha2 * float32(logSample)
	} else {
		tan2Theta = alpha2 * u[0] / (1 - u[0])
	}

	phi := 2 * math.Pi * float64(u[1])
	cosTheta := 1 / sqrt32(1+tan2Theta)
	sinTheta := sqrt32(max32(0, 1-cosTheta*cosTheta))

	wh := types.XYZ(
		sinTheta*float32(math.Cos(phi)),
		sinTheta*float32(math.Sin(phi)),
		cosTheta,
	)
	if !SameHemisphere(wo, wh) {
		wh = wh.Neg()
	}
	return wh
}

// Pdf of SampleWh with respect to solid angle.
func (d *Distribution) Pdf(wo, wh types.Vec3) float32 {
	return d.D(wh) * AbsCosTheta(wh)
}

// MicrofacetReflection models glossy reflection off a rough surface
// using the Torrance-Sparrow model.
type MicrofacetReflection struct {
	r       types.Spectrum
	dist    *Distribution
	fresnel Fresnel
}

// Create a Torrance-Sparrow lobe with reflectance scale r, microfacet
// distribution dist and fresnel term fresnel.
func NewMicrofacetReflection(r types.Spectrum, dist *Distribution, fresnel Fresnel) *MicrofacetReflection {
	return &MicrofacetReflection{r: r, dist: dist, fresnel: fresnel}
}

func (m *MicrofacetReflection) Type() Type {
	return Reflection | Glossy
}

func (m *MicrofacetReflection) F(wo, wi types.Vec3) types.Spectrum {
	cosThetaO := AbsCosTheta(wo)
	cosThetaI := AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return types.Spectrum{}
	}

	wh := wi.Add(wo)
	if wh == (types.Vec3{}) {
		return types.Spectrum{}
	}
	wh = wh.Normalize()

	fr := m.fresnel.Evaluate(wi.Dot(types.Faceforward(wh, types.XYZ(0, 0, 1))))
	scale := m.dist.D(wh) * m.dist.G(wo, wi) / (4 * cosThetaI * cosThetaO)
	return m.r.Modulate(fr).Mul(scale)
}

func (m *MicrofacetReflection) SampleF(wo types.Vec3, u types.Vec2) (types.Vec3, types.Spectrum, float32) {
	if wo[2] == 0 {
		return types.Vec3{}, types.Spectrum{}, 0
	}

	wh := m.dist.SampleWh(wo, u)
	cosWoWh := wo.Dot(wh)
	if cosWoWh < 0 {
		return types.Vec3{}, types.Spectrum{}, 0
	}

	wi := wo.Neg().Add(wh.Mul(2 * cosWoWh))
	if !SameHemisphere(wo, wi) {
		return types.Vec3{}, types.Spectrum{}, 0
	}

	pdf := m.dist.Pdf(wo, wh) / (4 * cosWoWh)
	return wi, m.F(wo, wi), pdf
}
